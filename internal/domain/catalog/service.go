package catalog

import (
	"context"

	"github.com/go-faster/errors"
)

// Service resolves curated groupings (collections, lookbook entries) into the
// catalog items they reference.
type Service struct {
	repo Repository
}

// NewService creates a catalog Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CollectionItems returns the collection and its items in the order the
// collection lists them. IDs that no longer exist in the catalog are skipped.
func (s *Service) CollectionItems(ctx context.Context, id string) (*Collection, []Item, error) {
	c, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "get collection %s", id)
	}

	items, err := s.resolve(ctx, c.ItemIDs)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "resolve collection %s", id)
	}
	return c, items, nil
}

// LookbookItems returns the lookbook entry and the items featured in it,
// the "shop the look" view.
func (s *Service) LookbookItems(ctx context.Context, id string) (*LookbookItem, []Item, error) {
	l, err := s.repo.GetLookbookItem(ctx, id)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "get lookbook item %s", id)
	}

	items, err := s.resolve(ctx, l.ItemIDs)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "resolve lookbook item %s", id)
	}
	return l, items, nil
}

func (s *Service) resolve(ctx context.Context, ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return []Item{}, nil
	}

	fetched, err := s.repo.GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Item, len(fetched))
	for _, it := range fetched {
		byID[it.ID] = it
	}

	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}
