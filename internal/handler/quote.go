package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// SubmitQuote validates, prices and stores a quote request.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	d, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	req, err := decodeQuoteRequest(d)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	q, err := h.quotes.Submit(r.Context(), req)
	if err != nil {
		writeError(w, r, err, msgProductNotFound)
		return
	}
	w.Header().Set("Location", "/api/quotes/"+q.ID)
	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) { encodeQuote(e, q) })
}

// GetQuote returns a stored quote.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeQuote(e, q) })
}

// QuotePDF renders a stored quote as a PDF attachment.
func (h *Handler) QuotePDF(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	doc, err := h.renderer.Render(q)
	if err != nil {
		writeError(w, r, errors.Wrapf(err, "render quote %s", q.ID), "")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "quote-"+q.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
