package catalog

import (
	"context"
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested item, collection or lookbook
// entry does not exist.
var ErrNotFound = errors.New("not found")

// Item is a rentable catalog entry. Items are loaded once and never mutated.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	ImageURL    string
	StyleNotes  string
	Vibes       []string
}

// HasVibe reports whether the item is tagged with vibe. Matching is exact,
// vibes are free-text labels rather than a controlled taxonomy.
func (i Item) HasVibe(vibe string) bool {
	return slices.Contains(i.Vibes, vibe)
}

// Collection is a curated, themed bundle of catalog items.
type Collection struct {
	ID                 string
	Name               string
	Description        string
	ImageURL           string
	ItemIDs            []string
	Vibe               string
	IsSeasonalLookbook bool
}

// LookbookItem is an inspiration image linked to the items shown in it.
type LookbookItem struct {
	ID          string
	Title       string
	ImageURL    string
	Category    string
	ItemIDs     []string
	Description string
}

// Repository defines read operations for the catalog, collections and
// lookbook. Filters that match nothing return an empty slice, not an error.
type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	GetItems(ctx context.Context, ids []string) ([]Item, error)
	ItemsByCategory(ctx context.Context, category string) ([]Item, error)
	ItemsByVibe(ctx context.Context, vibe string) ([]Item, error)

	ListCollections(ctx context.Context) ([]Collection, error)
	GetCollection(ctx context.Context, id string) (*Collection, error)

	ListLookbook(ctx context.Context) ([]LookbookItem, error)
	GetLookbookItem(ctx context.Context, id string) (*LookbookItem, error)
	LookbookByCategory(ctx context.Context, category string) ([]LookbookItem, error)
}
