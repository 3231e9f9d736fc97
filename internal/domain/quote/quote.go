// Package quote accepts quote requests from visitors, prices them and keeps
// the resulting records.
package quote

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/indigo-rentals/internal/domain/cart"
	"github.com/xenking/indigo-rentals/internal/domain/pricing"
)

// ErrNotFound is returned when a quote does not exist.
var ErrNotFound = errors.New("quote not found")

// MaxLines limits the number of lines in a single request. It matches the
// "max" tag on Request.Lines.
const MaxLines = 100

// LineRequest is a cart line as submitted with a quote request. Quantity is
// bounded by cart.MaxQuantity.
type LineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=10000"`
}

// Request is a visitor's quote request: contact details, the event and the
// cart contents. Items is the human-readable rendering of the cart, Lines
// the structured form used for pricing.
type Request struct {
	Name                string        `json:"name" validate:"required,max=200"`
	Email               string        `json:"email" validate:"required,email"`
	Phone               string        `json:"phone" validate:"max=50"`
	EventType           string        `json:"eventType" validate:"required"`
	EventDate           string        `json:"eventDate" validate:"required,datetime=2006-01-02,futuredate"`
	GuestCount          int           `json:"guestCount" validate:"omitempty,min=1,max=1000"`
	Location            string        `json:"location"`
	Message             string        `json:"message" validate:"max=5000"`
	IncludeDamageWaiver bool          `json:"includeDamageWaiver"`
	Items               []string      `json:"items"`
	Lines               []LineRequest `json:"lines" validate:"max=100,dive"`
}

// Quote is a persisted, priced quote request.
type Quote struct {
	ID string
	Request
	Breakdown   pricing.Breakdown
	PricingMode pricing.Mode
	CreatedAt   time.Time
}

// Repository defines persistence operations for quotes.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
}

// ValidationError lists request fields that failed validation, keyed by
// their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid quote request: %s", strings.Join(slices.Sorted(maps.Keys(e.Fields)), ", "))
}

// ProductNotFoundError indicates a quote line references an unknown product.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// RenderItems formats cart lines the way they appear on a quote:
// "Velvet Chair (12x)".
func RenderItems(lines []cart.Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, fmt.Sprintf("%s (%dx)", l.Item.Name, l.Quantity))
	}
	return out
}
