package handler

import (
	"maps"
	"net/http"
	"slices"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
)

// writeError maps domain errors to API error responses. notFound is the
// message used when err is catalog.ErrNotFound.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var (
		vErr   *quote.ValidationError
		pnfErr *quote.ProductNotFoundError
	)
	switch {
	case errors.Is(err, errBadBody):
		writeErrorBody(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &vErr):
		writeErrorBody(w, http.StatusBadRequest, "validation failed", vErr.Fields)
	case errors.As(err, &pnfErr):
		writeErrorBody(w, http.StatusUnprocessableEntity, pnfErr.Error(), nil)
	case errors.Is(err, catalog.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, notFound, nil)
	case errors.Is(err, quote.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "quote not found", nil)
	default:
		zctx.From(r.Context()).Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeErrorBody(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func writeErrorBody(w http.ResponseWriter, code int, msg string, fields map[string]string) {
	writeJSON(w, code, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(code) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
			if len(fields) == 0 {
				return
			}
			e.Field("fields", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					for _, k := range slices.Sorted(maps.Keys(fields)) {
						e.Field(k, func(e *jx.Encoder) { e.Str(fields[k]) })
					}
				})
			})
		})
	})
}
