package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/indigo-rentals/internal/domain/pricing"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
)

const (
	createQuoteSQL = `INSERT INTO quote_requests (
			id, name, email, phone, event_type, event_date, guest_count, location, message,
			include_damage_waiver, items, lines,
			subtotal, delivery_fee, setup_fee, damage_waiver_fee, total, pricing_mode, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	getQuoteSQL = `SELECT
			id, name, email, phone, event_type, event_date, guest_count, location, message,
			include_damage_waiver, items, lines,
			subtotal, delivery_fee, setup_fee, damage_waiver_fee, total, pricing_mode, created_at
		FROM quote_requests WHERE id = $1`
)

var _ quote.Repository = (*QuoteRepository)(nil)

// QuoteRepository implements quote.Repository backed by PostgreSQL.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository returns a QuoteRepository that uses the given pool.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

// Create persists a quote. Structured lines are stored as JSONB.
func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	items := q.Items
	if items == nil {
		items = []string{}
	}
	lines := q.Lines
	if lines == nil {
		lines = []quote.LineRequest{}
	}

	_, err := r.pool.Exec(ctx, createQuoteSQL,
		q.ID, q.Name, q.Email, q.Phone, q.EventType, q.EventDate, q.GuestCount, q.Location, q.Message,
		q.IncludeDamageWaiver, items, lines,
		q.Breakdown.Subtotal, q.Breakdown.DeliveryFee, q.Breakdown.SetupFee,
		q.Breakdown.DamageWaiverFee, q.Breakdown.Total,
		string(q.PricingMode), q.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create quote %q", q.ID)
	}
	return nil
}

// Get returns a quote or quote.ErrNotFound.
func (r *QuoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	rows, err := r.pool.Query(ctx, getQuoteSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get quote %q", id)
	}

	q, err := pgx.CollectExactlyOneRow(rows, scanQuote)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, quote.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get quote %q", id)
	}
	return &q, nil
}

func scanQuote(row pgx.CollectableRow) (quote.Quote, error) {
	var (
		q    quote.Quote
		mode string
	)
	err := row.Scan(
		&q.ID, &q.Name, &q.Email, &q.Phone, &q.EventType, &q.EventDate, &q.GuestCount, &q.Location, &q.Message,
		&q.IncludeDamageWaiver, &q.Items, &q.Lines,
		&q.Breakdown.Subtotal, &q.Breakdown.DeliveryFee, &q.Breakdown.SetupFee,
		&q.Breakdown.DamageWaiverFee, &q.Breakdown.Total,
		&mode, &q.CreatedAt,
	)
	q.PricingMode = pricing.Mode(mode)
	return q, err
}
