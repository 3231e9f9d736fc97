package quote

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/indigo-rentals/internal/domain/cart"
	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/domain/pricing"
)

// Pricer prices a quote request. The returned lines are the resolved cart
// contents, nil when the pricer does not look at the cart.
type Pricer interface {
	Mode() pricing.Mode
	Price(ctx context.Context, req Request) (pricing.Breakdown, []cart.Line, error)
}

var (
	_ Pricer = (*CartPricer)(nil)
	_ Pricer = StubPricer{}
)

// CartPricer rebuilds the visitor's cart from the request lines using
// catalog prices and runs it through the pricing calculator.
type CartPricer struct {
	items catalog.Repository
	calc  *pricing.Calculator
}

// NewCartPricer creates a CartPricer.
func NewCartPricer(items catalog.Repository, calc *pricing.Calculator) *CartPricer {
	return &CartPricer{items: items, calc: calc}
}

// Mode returns pricing.ModeCart.
func (p *CartPricer) Mode() pricing.Mode { return pricing.ModeCart }

// Price resolves every line against the catalog. An unknown product ID
// yields *ProductNotFoundError.
func (p *CartPricer) Price(ctx context.Context, req Request) (pricing.Breakdown, []cart.Line, error) {
	s, err := BuildCart(ctx, p.items, req.Lines)
	if err != nil {
		return pricing.Breakdown{}, nil, err
	}
	if req.GuestCount > 0 {
		s.SetGuestCount(req.GuestCount)
	}
	s.SetLocation(req.Location)
	s.SetDamageWaiver(req.IncludeDamageWaiver)

	return p.calc.Calculate(s.Snapshot()), s.Lines(), nil
}

// BuildCart creates a cart holding lines, with items and prices taken from
// the catalog. Repeated product IDs accumulate; a product whose total
// quantity exceeds cart.MaxQuantity yields *ValidationError.
func BuildCart(ctx context.Context, items catalog.Repository, lines []LineRequest) (*cart.Store, error) {
	s := cart.NewStore()
	if len(lines) == 0 {
		return s, nil
	}

	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}

	fetched, err := items.GetItems(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get items")
	}
	byID := make(map[string]catalog.Item, len(fetched))
	for _, it := range fetched {
		byID[it.ID] = it
	}

	totals := make(map[string]int, len(lines))
	for i, l := range lines {
		it, ok := byID[l.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: l.ProductID}
		}
		if l.Quantity > cart.MaxQuantity-totals[l.ProductID] {
			return nil, &ValidationError{Fields: map[string]string{
				fmt.Sprintf("lines[%d].quantity", i): fmt.Sprintf("total quantity of %s must be at most %d", l.ProductID, cart.MaxQuantity),
			}}
		}
		totals[l.ProductID] += l.Quantity
		s.AddQuantity(it, l.Quantity)
	}
	return s, nil
}

// StubPricer answers every request with pricing.StubBreakdown.
type StubPricer struct{}

// Mode returns pricing.ModeStub.
func (StubPricer) Mode() pricing.Mode { return pricing.ModeStub }

// Price returns the fixed stub amounts.
func (StubPricer) Price(context.Context, Request) (pricing.Breakdown, []cart.Line, error) {
	return pricing.StubBreakdown(), nil, nil
}
