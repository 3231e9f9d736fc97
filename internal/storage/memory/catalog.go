// Package memory provides map-backed repositories for running without a
// database.
package memory

import (
	"context"
	"slices"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/storage/seed"
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository serves a fixed catalog. It is read-only after
// construction and safe for concurrent use.
type CatalogRepository struct {
	items       []catalog.Item
	itemIdx     map[string]int
	collections []catalog.Collection
	collIdx     map[string]int
	lookbook    []catalog.LookbookItem
	lookIdx     map[string]int
}

// NewCatalogRepository returns a repository over c, listing entries in the
// order c holds them.
func NewCatalogRepository(c *seed.Catalog) *CatalogRepository {
	r := &CatalogRepository{
		items:       slices.Clone(c.Items),
		itemIdx:     make(map[string]int, len(c.Items)),
		collections: slices.Clone(c.Collections),
		collIdx:     make(map[string]int, len(c.Collections)),
		lookbook:    slices.Clone(c.Lookbook),
		lookIdx:     make(map[string]int, len(c.Lookbook)),
	}
	for i, it := range r.items {
		r.itemIdx[it.ID] = i
	}
	for i, col := range r.collections {
		r.collIdx[col.ID] = i
	}
	for i, l := range r.lookbook {
		r.lookIdx[l.ID] = i
	}
	return r
}

// ListItems returns the whole catalog.
func (r *CatalogRepository) ListItems(context.Context) ([]catalog.Item, error) {
	return cloneItems(r.items), nil
}

// GetItem returns the item with id or catalog.ErrNotFound.
func (r *CatalogRepository) GetItem(_ context.Context, id string) (*catalog.Item, error) {
	i, ok := r.itemIdx[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	it := cloneItem(r.items[i])
	return &it, nil
}

// GetItems returns the items matching any of ids in catalog order. Unknown
// and repeated IDs are ignored.
func (r *CatalogRepository) GetItems(_ context.Context, ids []string) ([]catalog.Item, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.filterItems(func(it catalog.Item) bool {
		_, ok := want[it.ID]
		return ok
	}), nil
}

// ItemsByCategory returns items in category. Unknown categories match
// nothing.
func (r *CatalogRepository) ItemsByCategory(_ context.Context, category string) ([]catalog.Item, error) {
	return r.filterItems(func(it catalog.Item) bool {
		return string(it.Category) == category
	}), nil
}

// ItemsByVibe returns items tagged with vibe.
func (r *CatalogRepository) ItemsByVibe(_ context.Context, vibe string) ([]catalog.Item, error) {
	return r.filterItems(func(it catalog.Item) bool {
		return it.HasVibe(vibe)
	}), nil
}

// ListCollections returns all collections.
func (r *CatalogRepository) ListCollections(context.Context) ([]catalog.Collection, error) {
	out := make([]catalog.Collection, len(r.collections))
	for i, c := range r.collections {
		out[i] = cloneCollection(c)
	}
	return out, nil
}

// GetCollection returns the collection with id or catalog.ErrNotFound.
func (r *CatalogRepository) GetCollection(_ context.Context, id string) (*catalog.Collection, error) {
	i, ok := r.collIdx[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	c := cloneCollection(r.collections[i])
	return &c, nil
}

// ListLookbook returns all lookbook entries.
func (r *CatalogRepository) ListLookbook(context.Context) ([]catalog.LookbookItem, error) {
	out := make([]catalog.LookbookItem, len(r.lookbook))
	for i, l := range r.lookbook {
		out[i] = cloneLookbookItem(l)
	}
	return out, nil
}

// GetLookbookItem returns the lookbook entry with id or catalog.ErrNotFound.
func (r *CatalogRepository) GetLookbookItem(_ context.Context, id string) (*catalog.LookbookItem, error) {
	i, ok := r.lookIdx[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	l := cloneLookbookItem(r.lookbook[i])
	return &l, nil
}

// LookbookByCategory returns lookbook entries in category.
func (r *CatalogRepository) LookbookByCategory(_ context.Context, category string) ([]catalog.LookbookItem, error) {
	out := []catalog.LookbookItem{}
	for _, l := range r.lookbook {
		if l.Category == category {
			out = append(out, cloneLookbookItem(l))
		}
	}
	return out, nil
}

func (r *CatalogRepository) filterItems(match func(catalog.Item) bool) []catalog.Item {
	out := []catalog.Item{}
	for _, it := range r.items {
		if match(it) {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

func cloneItems(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}

func cloneItem(it catalog.Item) catalog.Item {
	it.Vibes = slices.Clone(it.Vibes)
	return it
}

func cloneCollection(c catalog.Collection) catalog.Collection {
	c.ItemIDs = slices.Clone(c.ItemIDs)
	return c
}

func cloneLookbookItem(l catalog.LookbookItem) catalog.LookbookItem {
	l.ItemIDs = slices.Clone(l.ItemIDs)
	return l
}
