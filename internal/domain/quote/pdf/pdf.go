// Package pdf renders quotes as printable PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"

	"github.com/xenking/indigo-rentals/internal/domain/pricing"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
)

// Renderer turns a quote into a PDF document.
type Renderer struct {
	company string
}

// NewRenderer creates a Renderer that prints company in the header.
func NewRenderer(company string) *Renderer {
	return &Renderer{company: company}
}

// Render returns the PDF bytes for q.
func (r *Renderer) Render(q *quote.Quote) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr(r.company+" quote "+q.ID), false)
	doc.SetCreationDate(q.CreatedAt)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, tr(r.company))
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 5, tr(fmt.Sprintf("Quote %s, %s", q.ID, q.CreatedAt.Format("January 2, 2006"))))
	doc.Ln(10)

	// Contact and event.
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 7, "Event")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	for _, row := range [][2]string{
		{"Name", q.Name},
		{"Email", q.Email},
		{"Phone", q.Phone},
		{"Event type", q.EventType},
		{"Event date", q.EventDate},
		{"Guests", guests(q.GuestCount)},
		{"Location", q.Location},
	} {
		if row[1] == "" {
			continue
		}
		doc.Cell(35, 6, tr(row[0]))
		doc.Cell(0, 6, tr(row[1]))
		doc.Ln(6)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 7, "Items")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	if len(q.Items) == 0 {
		doc.Cell(0, 6, "No items selected")
		doc.Ln(6)
	}
	for _, it := range q.Items {
		doc.Cell(0, 6, tr(trim(it, 90)))
		doc.Ln(6)
	}

	doc.Ln(4)
	disp := q.Breakdown.Display()
	for _, row := range [][2]string{
		{"Subtotal", disp.Subtotal},
		{"Delivery", disp.DeliveryFee},
		{"Setup", disp.SetupFee},
		{"Damage waiver", disp.DamageWaiverFee},
	} {
		doc.Cell(140, 6, row[0])
		doc.CellFormat(0, 6, "$"+row[1], "", 0, "R", false, 0, "")
		doc.Ln(6)
	}
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(140, 8, "Total", "T", 0, "", false, 0, "")
	doc.CellFormat(0, 8, "$"+disp.Total, "T", 0, "R", false, 0, "")
	doc.Ln(12)

	if q.PricingMode == pricing.ModeStub {
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, "Amounts are a preliminary estimate and will be confirmed by our team.", "", "", false)
	}
	if q.Message != "" {
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, tr("Notes: "+q.Message), "", "", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}
	return buf.Bytes(), nil
}

func guests(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
