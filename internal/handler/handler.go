// Package handler exposes the catalog, estimate and quote operations over
// HTTP as JSON.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/domain/pricing"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
)

// QuoteService submits and loads quote requests.
type QuoteService interface {
	Submit(ctx context.Context, req quote.Request) (*quote.Quote, error)
	Get(ctx context.Context, id string) (*quote.Quote, error)
}

// QuoteRenderer renders a stored quote as a printable document.
type QuoteRenderer interface {
	Render(q *quote.Quote) ([]byte, error)
}

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// ImageBaseURL is prepended to relative image paths in responses.
	// When empty, image paths are returned as stored.
	ImageBaseURL string
}

// Handler serves the rental API.
type Handler struct {
	items        catalog.Repository
	catalog      *catalog.Service
	quotes       QuoteService
	calc         *pricing.Calculator
	renderer     QuoteRenderer
	imageBaseURL string
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	cfg HandlerConfig,
	items catalog.Repository,
	quotes QuoteService,
	calc *pricing.Calculator,
	renderer QuoteRenderer,
) *Handler {
	return &Handler{
		items:        items,
		catalog:      catalog.NewService(items),
		quotes:       quotes,
		calc:         calc,
		renderer:     renderer,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Mount registers the API routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/products/category/{category}", h.ProductsByCategory)
		r.Get("/products/vibe/{vibe}", h.ProductsByVibe)

		r.Get("/collections", h.ListCollections)
		r.Get("/collections/{id}", h.GetCollection)
		r.Get("/collections/{id}/items", h.CollectionItems)

		r.Get("/lookbook", h.ListLookbook)
		r.Get("/lookbook/category/{category}", h.LookbookByCategory)
		r.Get("/lookbook/{id}/items", h.LookbookItems)

		r.Post("/estimate", h.Estimate)

		r.Post("/quotes", h.SubmitQuote)
		r.Get("/quotes/{id}", h.GetQuote)
		r.Get("/quotes/{id}/pdf", h.QuotePDF)
	})
}
