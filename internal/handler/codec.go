package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/domain/pricing"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
	"github.com/xenking/indigo-rentals/internal/domain/recommend"
)

const maxBodyBytes = 1 << 20

// errBadBody marks request bodies that are not valid JSON of the expected
// shape.
var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func readBody(w http.ResponseWriter, r *http.Request) (*jx.Decoder, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errBadBody, err.Error())
	}
	return jx.DecodeBytes(data), nil
}

// --- Encoding ---

func (h *Handler) encodeItem(e *jx.Encoder, it catalog.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(it.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(it.Description) })
		e.Field("price", func(e *jx.Encoder) { e.Str(pricing.Format(it.Price)) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(it.Category)) })
		e.Field("imageUrl", func(e *jx.Encoder) { e.Str(h.imageURL(it.ImageURL)) })
		e.Field("styleNotes", func(e *jx.Encoder) { e.Str(it.StyleNotes) })
		e.Field("vibe", func(e *jx.Encoder) { encodeStrs(e, it.Vibes) })
	})
}

func (h *Handler) encodeItems(e *jx.Encoder, items []catalog.Item) {
	e.Arr(func(e *jx.Encoder) {
		for _, it := range items {
			h.encodeItem(e, it)
		}
	})
}

func (h *Handler) encodeCollection(e *jx.Encoder, c catalog.Collection) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(c.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(c.Description) })
		e.Field("imageUrl", func(e *jx.Encoder) { e.Str(h.imageURL(c.ImageURL)) })
		e.Field("products", func(e *jx.Encoder) { encodeStrs(e, c.ItemIDs) })
		e.Field("vibe", func(e *jx.Encoder) { e.Str(c.Vibe) })
		e.Field("isSeasonalLookbook", func(e *jx.Encoder) { e.Bool(c.IsSeasonalLookbook) })
	})
}

func (h *Handler) encodeLookbookItem(e *jx.Encoder, l catalog.LookbookItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(l.ID) })
		e.Field("title", func(e *jx.Encoder) { e.Str(l.Title) })
		e.Field("imageUrl", func(e *jx.Encoder) { e.Str(h.imageURL(l.ImageURL)) })
		e.Field("category", func(e *jx.Encoder) { e.Str(l.Category) })
		e.Field("products", func(e *jx.Encoder) { encodeStrs(e, l.ItemIDs) })
		e.Field("description", func(e *jx.Encoder) { e.Str(l.Description) })
	})
}

func (h *Handler) encodeSuggestions(e *jx.Encoder, sugg []recommend.Suggestion) {
	e.Arr(func(e *jx.Encoder) {
		for _, s := range sugg {
			e.Obj(func(e *jx.Encoder) {
				e.Field("product", func(e *jx.Encoder) { h.encodeItem(e, s.Item) })
				e.Field("suggestedQuantity", func(e *jx.Encoder) { e.Int(s.Quantity) })
			})
		}
	})
}

// encodeBreakdownFields writes the fee fields into the enclosing object.
func encodeBreakdownFields(e *jx.Encoder, b pricing.Breakdown) {
	d := b.Display()
	e.Field("subtotal", func(e *jx.Encoder) { e.Str(d.Subtotal) })
	e.Field("deliveryFee", func(e *jx.Encoder) { e.Str(d.DeliveryFee) })
	e.Field("setupFee", func(e *jx.Encoder) { e.Str(d.SetupFee) })
	e.Field("damageWaiverFee", func(e *jx.Encoder) { e.Str(d.DamageWaiverFee) })
	e.Field("total", func(e *jx.Encoder) { e.Str(d.Total) })
}

func encodeQuote(e *jx.Encoder, q *quote.Quote) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(q.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(q.Name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(q.Email) })
		e.Field("phone", func(e *jx.Encoder) { optStr(e, q.Phone) })
		e.Field("eventType", func(e *jx.Encoder) { e.Str(q.EventType) })
		e.Field("eventDate", func(e *jx.Encoder) { e.Str(q.EventDate) })
		e.Field("guestCount", func(e *jx.Encoder) {
			if q.GuestCount <= 0 {
				e.Null()
				return
			}
			e.Int(q.GuestCount)
		})
		e.Field("location", func(e *jx.Encoder) { optStr(e, q.Location) })
		e.Field("message", func(e *jx.Encoder) { optStr(e, q.Message) })
		e.Field("includeDamageWaiver", func(e *jx.Encoder) { e.Bool(q.IncludeDamageWaiver) })
		e.Field("items", func(e *jx.Encoder) { encodeStrs(e, q.Items) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range q.Lines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("productId", func(e *jx.Encoder) { e.Str(l.ProductID) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
					})
				}
			})
		})
		encodeBreakdownFields(e, q.Breakdown)
		e.Field("pricingMode", func(e *jx.Encoder) { e.Str(string(q.PricingMode)) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(q.CreatedAt.UTC().Format(time.RFC3339)) })
	})
}

func encodeStrs(e *jx.Encoder, ss []string) {
	e.Arr(func(e *jx.Encoder) {
		for _, s := range ss {
			e.Str(s)
		}
	})
}

func optStr(e *jx.Encoder, s string) {
	if s == "" {
		e.Null()
		return
	}
	e.Str(s)
}

// imageURL prefixes relative image paths with the configured base URL.
func (h *Handler) imageURL(p string) string {
	if h.imageBaseURL == "" || p == "" || strings.Contains(p, "://") {
		return p
	}
	return strings.TrimRight(h.imageBaseURL, "/") + "/" + strings.TrimLeft(p, "/")
}

// --- Decoding ---

func decodeQuoteRequest(d *jx.Decoder) (quote.Request, error) {
	var req quote.Request
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "name":
			req.Name, err = decodeOptStr(d)
		case "email":
			req.Email, err = decodeOptStr(d)
		case "phone":
			req.Phone, err = decodeOptStr(d)
		case "eventType":
			req.EventType, err = decodeOptStr(d)
		case "eventDate":
			req.EventDate, err = decodeOptStr(d)
		case "guestCount":
			req.GuestCount, err = decodeOptInt(d)
		case "location":
			req.Location, err = decodeOptStr(d)
		case "message":
			req.Message, err = decodeOptStr(d)
		case "includeDamageWaiver":
			req.IncludeDamageWaiver, err = decodeOptBool(d)
		case "items":
			req.Items, err = decodeStrs(d)
		case "lines":
			req.Lines, err = decodeLines(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	if err != nil {
		return quote.Request{}, errors.Wrap(errBadBody, err.Error())
	}
	return req, nil
}

type estimateRequest struct {
	GuestCount          int
	Location            string
	IncludeDamageWaiver bool
	Lines               []quote.LineRequest
}

func decodeEstimateRequest(d *jx.Decoder) (estimateRequest, error) {
	var req estimateRequest
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "guestCount":
			req.GuestCount, err = decodeOptInt(d)
		case "location":
			req.Location, err = decodeOptStr(d)
		case "includeDamageWaiver":
			req.IncludeDamageWaiver, err = decodeOptBool(d)
		case "lines":
			req.Lines, err = decodeLines(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	if err != nil {
		return estimateRequest{}, errors.Wrap(errBadBody, err.Error())
	}
	return req, nil
}

func decodeLines(d *jx.Decoder) ([]quote.LineRequest, error) {
	lines := []quote.LineRequest{}
	if d.Next() == jx.Null {
		return lines, d.Null()
	}
	err := d.Arr(func(d *jx.Decoder) error {
		var l quote.LineRequest
		if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "productId":
				l.ProductID, err = d.Str()
			case "quantity":
				l.Quantity, err = d.Int()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		lines = append(lines, l)
		return nil
	})
	return lines, err
}

func decodeStrs(d *jx.Decoder) ([]string, error) {
	out := []string{}
	if d.Next() == jx.Null {
		return out, d.Null()
	}
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

func decodeOptStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}

func decodeOptInt(d *jx.Decoder) (int, error) {
	if d.Next() == jx.Null {
		return 0, d.Null()
	}
	return d.Int()
}

func decodeOptBool(d *jx.Decoder) (bool, error) {
	if d.Next() == jx.Null {
		return false, d.Null()
	}
	return d.Bool()
}
