package catalog

import "github.com/go-faster/errors"

// Category classifies catalog items. Pricing and recommendations key off it.
type Category string

const (
	CategorySeating       Category = "seating"
	CategoryTables        Category = "tables"
	CategoryLinens        Category = "linens"
	CategoryTableware     Category = "tableware"
	CategoryDecor         Category = "decor"
	CategoryLighting      Category = "lighting"
	CategoryAudio         Category = "audio"
	CategoryFlooring      Category = "flooring"
	CategoryEntertainment Category = "entertainment"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategorySeating,
	CategoryTables,
	CategoryLinens,
	CategoryTableware,
	CategoryDecor,
	CategoryLighting,
	CategoryAudio,
	CategoryFlooring,
	CategoryEntertainment,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySeating, CategoryTables, CategoryLinens, CategoryTableware,
		CategoryDecor, CategoryLighting, CategoryAudio, CategoryFlooring,
		CategoryEntertainment:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts s into a Category, rejecting unknown values.
// Filtering endpoints do not use it: an unknown filter simply matches nothing.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", errors.Errorf("unknown category %q", s)
	}
	return c, nil
}
