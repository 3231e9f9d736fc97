package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/xenking/indigo-rentals/internal/domain/cart"
	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/domain/recommend"
)

const (
	msgProductNotFound    = "product not found"
	msgCollectionNotFound = "collection not found"
	msgLookbookNotFound   = "lookbook item not found"
)

// ListProducts returns the full catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListItems(r.Context())
	if err != nil {
		writeError(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeItems(e, items) })
}

// GetProduct returns a single catalog item.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	it, err := h.items.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeItem(e, *it) })
}

// ProductsByCategory returns items of one category. Unknown categories
// yield an empty list.
func (h *Handler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ItemsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeItems(e, items) })
}

// ProductsByVibe returns items tagged with a vibe.
func (h *Handler) ProductsByVibe(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ItemsByVibe(r.Context(), chi.URLParam(r, "vibe"))
	if err != nil {
		writeError(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeItems(e, items) })
}

// ListCollections returns every curated collection.
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := h.items.ListCollections(r.Context())
	if err != nil {
		writeError(w, r, err, msgCollectionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, c := range cols {
				h.encodeCollection(e, c)
			}
		})
	})
}

// GetCollection returns a single collection.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	c, err := h.items.GetCollection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgCollectionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeCollection(e, *c) })
}

// CollectionItems returns the items of a collection in collection order.
func (h *Handler) CollectionItems(w http.ResponseWriter, r *http.Request) {
	_, items, err := h.catalog.CollectionItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgCollectionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeItems(e, items) })
}

// ListLookbook returns every lookbook entry.
func (h *Handler) ListLookbook(w http.ResponseWriter, r *http.Request) {
	entries, err := h.items.ListLookbook(r.Context())
	if err != nil {
		writeError(w, r, err, msgLookbookNotFound)
		return
	}
	h.writeLookbook(w, entries)
}

// LookbookByCategory returns lookbook entries of one category.
func (h *Handler) LookbookByCategory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.items.LookbookByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, r, err, msgLookbookNotFound)
		return
	}
	h.writeLookbook(w, entries)
}

// LookbookItems is the "shop the look" view: the entry with each featured
// item and its suggested quantity for the guestCount query parameter.
func (h *Handler) LookbookItems(w http.ResponseWriter, r *http.Request) {
	guests := cart.DefaultGuestCount
	if v := r.URL.Query().Get("guestCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeErrorBody(w, http.StatusBadRequest, "guestCount must be a positive integer", nil)
			return
		}
		guests = n
	}

	entry, items, err := h.catalog.LookbookItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgLookbookNotFound)
		return
	}
	sugg := recommend.Suggestions(cart.State{GuestCount: guests}, items)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("lookbookItem", func(e *jx.Encoder) { h.encodeLookbookItem(e, *entry) })
			e.Field("guestCount", func(e *jx.Encoder) { e.Int(guests) })
			e.Field("items", func(e *jx.Encoder) { h.encodeSuggestions(e, sugg) })
		})
	})
}

func (h *Handler) writeLookbook(w http.ResponseWriter, entries []catalog.LookbookItem) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, l := range entries {
				h.encodeLookbookItem(e, l)
			}
		})
	})
}
