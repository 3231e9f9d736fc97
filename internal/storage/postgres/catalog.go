package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
)

const (
	itemColumns = `id, name, description, price, category, image_url, style_notes, vibes`

	listItemsSQL       = `SELECT ` + itemColumns + ` FROM products ORDER BY position`
	getItemSQL         = `SELECT ` + itemColumns + ` FROM products WHERE id = $1`
	getItemsSQL        = `SELECT ` + itemColumns + ` FROM products WHERE id = ANY($1) ORDER BY position`
	itemsByCategorySQL = `SELECT ` + itemColumns + ` FROM products WHERE category = $1 ORDER BY position`
	itemsByVibeSQL     = `SELECT ` + itemColumns + ` FROM products WHERE $1 = ANY(vibes) ORDER BY position`

	collectionColumns = `id, name, description, image_url, product_ids, vibe, is_seasonal_lookbook`

	listCollectionsSQL = `SELECT ` + collectionColumns + ` FROM collections ORDER BY position`
	getCollectionSQL   = `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`

	lookbookColumns = `id, title, image_url, category, product_ids, description`

	listLookbookSQL       = `SELECT ` + lookbookColumns + ` FROM lookbook_items ORDER BY position`
	getLookbookItemSQL    = `SELECT ` + lookbookColumns + ` FROM lookbook_items WHERE id = $1`
	lookbookByCategorySQL = `SELECT ` + lookbookColumns + ` FROM lookbook_items WHERE category = $1 ORDER BY position`
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository implements catalog.Repository backed by PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a CatalogRepository that uses the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListItems returns the catalog in insertion order.
func (r *CatalogRepository) ListItems(ctx context.Context) ([]catalog.Item, error) {
	return r.queryItems(ctx, "list items", listItemsSQL)
}

// GetItem returns a single item or catalog.ErrNotFound.
func (r *CatalogRepository) GetItem(ctx context.Context, id string) (*catalog.Item, error) {
	rows, err := r.pool.Query(ctx, getItemSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get item %q", id)
	}

	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get item %q", id)
	}
	return &it, nil
}

// GetItems returns items matching any of ids.
func (r *CatalogRepository) GetItems(ctx context.Context, ids []string) ([]catalog.Item, error) {
	return r.queryItems(ctx, "get items by ids", getItemsSQL, ids)
}

// ItemsByCategory returns items in category.
func (r *CatalogRepository) ItemsByCategory(ctx context.Context, category string) ([]catalog.Item, error) {
	return r.queryItems(ctx, "list items by category", itemsByCategorySQL, category)
}

// ItemsByVibe returns items tagged with vibe.
func (r *CatalogRepository) ItemsByVibe(ctx context.Context, vibe string) ([]catalog.Item, error) {
	return r.queryItems(ctx, "list items by vibe", itemsByVibeSQL, vibe)
}

// ListCollections returns all collections.
func (r *CatalogRepository) ListCollections(ctx context.Context) ([]catalog.Collection, error) {
	rows, err := r.pool.Query(ctx, listCollectionsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list collections")
	}
	out, err := pgx.CollectRows(rows, scanCollection)
	if err != nil {
		return nil, errors.Wrap(err, "list collections")
	}
	return out, nil
}

// GetCollection returns a collection or catalog.ErrNotFound.
func (r *CatalogRepository) GetCollection(ctx context.Context, id string) (*catalog.Collection, error) {
	rows, err := r.pool.Query(ctx, getCollectionSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get collection %q", id)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCollection)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get collection %q", id)
	}
	return &c, nil
}

// ListLookbook returns all lookbook entries.
func (r *CatalogRepository) ListLookbook(ctx context.Context) ([]catalog.LookbookItem, error) {
	return r.queryLookbook(ctx, "list lookbook", listLookbookSQL)
}

// GetLookbookItem returns a lookbook entry or catalog.ErrNotFound.
func (r *CatalogRepository) GetLookbookItem(ctx context.Context, id string) (*catalog.LookbookItem, error) {
	rows, err := r.pool.Query(ctx, getLookbookItemSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get lookbook item %q", id)
	}

	l, err := pgx.CollectExactlyOneRow(rows, scanLookbookItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get lookbook item %q", id)
	}
	return &l, nil
}

// LookbookByCategory returns lookbook entries in category.
func (r *CatalogRepository) LookbookByCategory(ctx context.Context, category string) ([]catalog.LookbookItem, error) {
	return r.queryLookbook(ctx, "list lookbook by category", lookbookByCategorySQL, category)
}

func (r *CatalogRepository) queryItems(ctx context.Context, op, sql string, args ...any) ([]catalog.Item, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	out, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if out == nil {
		out = []catalog.Item{}
	}
	return out, nil
}

func (r *CatalogRepository) queryLookbook(ctx context.Context, op, sql string, args ...any) ([]catalog.LookbookItem, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	out, err := pgx.CollectRows(rows, scanLookbookItem)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if out == nil {
		out = []catalog.LookbookItem{}
	}
	return out, nil
}

func scanItem(row pgx.CollectableRow) (catalog.Item, error) {
	var (
		it       catalog.Item
		category string
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Price, &category,
		&it.ImageURL, &it.StyleNotes, &it.Vibes,
	)
	it.Category = catalog.Category(category)
	return it, err
}

func scanCollection(row pgx.CollectableRow) (catalog.Collection, error) {
	var c catalog.Collection
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.ItemIDs, &c.Vibe, &c.IsSeasonalLookbook)
	return c, err
}

func scanLookbookItem(row pgx.CollectableRow) (catalog.LookbookItem, error) {
	var l catalog.LookbookItem
	err := row.Scan(&l.ID, &l.Title, &l.ImageURL, &l.Category, &l.ItemIDs, &l.Description)
	return l, err
}
