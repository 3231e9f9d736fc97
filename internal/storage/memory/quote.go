package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/indigo-rentals/internal/domain/quote"
)

var _ quote.Repository = (*QuoteRepository)(nil)

// ErrDuplicateQuote is returned when a quote ID is stored twice.
var ErrDuplicateQuote = errors.New("duplicate quote id")

// QuoteRepository keeps quotes in a map. It is safe for concurrent use.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]quote.Quote
}

// NewQuoteRepository returns an empty QuoteRepository.
func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]quote.Quote)}
}

// Create stores a copy of q.
func (r *QuoteRepository) Create(_ context.Context, q *quote.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[q.ID]; ok {
		return errors.Wrapf(ErrDuplicateQuote, "create quote %s", q.ID)
	}
	r.quotes[q.ID] = cloneQuote(*q)
	return nil
}

// Get returns a copy of the stored quote or quote.ErrNotFound.
func (r *QuoteRepository) Get(_ context.Context, id string) (*quote.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return nil, quote.ErrNotFound
	}
	q = cloneQuote(q)
	return &q, nil
}

// Len returns the number of stored quotes.
func (r *QuoteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes)
}

func cloneQuote(q quote.Quote) quote.Quote {
	q.Items = slices.Clone(q.Items)
	q.Lines = slices.Clone(q.Lines)
	return q
}
