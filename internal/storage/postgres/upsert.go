package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/storage/seed"
)

const (
	upsertItemSQL = `INSERT INTO products (id, name, description, price, category, image_url, style_notes, vibes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image_url = EXCLUDED.image_url,
			style_notes = EXCLUDED.style_notes,
			vibes = EXCLUDED.vibes`

	upsertCollectionSQL = `INSERT INTO collections (id, name, description, image_url, product_ids, vibe, is_seasonal_lookbook)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			product_ids = EXCLUDED.product_ids,
			vibe = EXCLUDED.vibe,
			is_seasonal_lookbook = EXCLUDED.is_seasonal_lookbook`

	upsertLookbookItemSQL = `INSERT INTO lookbook_items (id, title, image_url, category, product_ids, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			category = EXCLUDED.category,
			product_ids = EXCLUDED.product_ids,
			description = EXCLUDED.description`
)

// CatalogWriter inserts or updates catalog entries. Existing rows keep their
// listing position.
type CatalogWriter struct {
	pool *pgxpool.Pool
}

// NewCatalogWriter returns a CatalogWriter that uses the given pool.
func NewCatalogWriter(pool *pgxpool.Pool) *CatalogWriter {
	return &CatalogWriter{pool: pool}
}

// UpsertItems writes items in a single batch.
func (w *CatalogWriter) UpsertItems(ctx context.Context, items []catalog.Item) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(upsertItemSQL,
			it.ID, it.Name, it.Description, it.Price, string(it.Category),
			it.ImageURL, it.StyleNotes, nonNil(it.Vibes),
		)
	}
	return w.send(ctx, batch, "upsert items")
}

// UpsertCatalog writes every item, collection and lookbook entry of c in
// one transaction.
func (w *CatalogWriter) UpsertCatalog(ctx context.Context, c *seed.Catalog) error {
	return pgx.BeginFunc(ctx, w.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, it := range c.Items {
			batch.Queue(upsertItemSQL,
				it.ID, it.Name, it.Description, it.Price, string(it.Category),
				it.ImageURL, it.StyleNotes, nonNil(it.Vibes),
			)
		}
		for _, col := range c.Collections {
			batch.Queue(upsertCollectionSQL,
				col.ID, col.Name, col.Description, col.ImageURL, nonNil(col.ItemIDs),
				col.Vibe, col.IsSeasonalLookbook,
			)
		}
		for _, l := range c.Lookbook {
			batch.Queue(upsertLookbookItemSQL,
				l.ID, l.Title, l.ImageURL, l.Category, nonNil(l.ItemIDs), l.Description,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return errors.Wrap(err, "upsert catalog")
		}
		return nil
	})
}

func (w *CatalogWriter) send(ctx context.Context, batch *pgx.Batch, op string) error {
	if err := w.pool.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrap(err, op)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
