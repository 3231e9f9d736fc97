// Package recommend suggests rental quantities from the guest count and
// points out essential categories missing from a cart.
package recommend

import (
	"github.com/xenking/indigo-rentals/internal/domain/cart"
	"github.com/xenking/indigo-rentals/internal/domain/catalog"
)

const (
	// guestsPerTableUnit is how many guests one seating, table or linen
	// unit serves.
	guestsPerTableUnit = 8
	// guestsPerLight is how many guests one lighting unit serves.
	guestsPerLight = 25
)

// Essentials are the categories every event is expected to rent, in the
// order MissingCategories reports them.
var Essentials = []catalog.Category{
	catalog.CategorySeating,
	catalog.CategoryTables,
	catalog.CategoryLinens,
	catalog.CategoryLighting,
}

// SuggestedQuantity returns how many units of an item in category are
// needed for guestCount guests. Guest counts below 1 count as one guest, so
// the result is always at least 1.
func SuggestedQuantity(category catalog.Category, guestCount int) int {
	guestCount = max(guestCount, 1)

	switch category {
	case catalog.CategorySeating, catalog.CategoryTables, catalog.CategoryLinens:
		return ceilDiv(guestCount, guestsPerTableUnit)
	case catalog.CategoryLighting:
		return ceilDiv(guestCount, guestsPerLight)
	default:
		return 1
	}
}

// MissingCategories returns the essential categories with no line in s.
func MissingCategories(s cart.State) []catalog.Category {
	missing := make([]catalog.Category, 0, len(Essentials))
	for _, c := range Essentials {
		if !s.HasCategory(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Suggestion pairs a catalog item with its suggested quantity.
type Suggestion struct {
	Item     catalog.Item
	Quantity int
}

// Suggestions returns the suggested quantity of each item for the guest
// count in s, preserving the order of items.
func Suggestions(s cart.State, items []catalog.Item) []Suggestion {
	out := make([]Suggestion, 0, len(items))
	for _, it := range items {
		out = append(out, Suggestion{
			Item:     it,
			Quantity: SuggestedQuantity(it.Category, s.GuestCount),
		})
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
