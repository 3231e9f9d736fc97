// Package cart holds the in-progress quote: the selected catalog items with
// their quantities and the event parameters that drive pricing.
package cart

import "github.com/xenking/indigo-rentals/internal/domain/catalog"

const (
	// DefaultGuestCount is the guest count a new cart starts with.
	DefaultGuestCount = 50
	// MaxQuantity caps the quantity of a single line.
	MaxQuantity = 10_000
)

// Line is a catalog item in the cart. Quantity is always between 1 and
// MaxQuantity.
type Line struct {
	Item     catalog.Item
	Quantity int
}

// State is a point-in-time copy of a cart. Pricing and recommendations are
// derived from it and never from the Store directly.
type State struct {
	Lines               []Line
	IsOpen              bool
	GuestCount          int
	Location            string
	IncludeDamageWaiver bool
}

// ItemCount returns the total quantity across all lines.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// HasCategory reports whether any line holds an item of category c.
func (s State) HasCategory(c catalog.Category) bool {
	for _, l := range s.Lines {
		if l.Item.Category == c {
			return true
		}
	}
	return false
}
