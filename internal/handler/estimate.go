package handler

import (
	"fmt"
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/indigo-rentals/internal/domain/cart"
	"github.com/xenking/indigo-rentals/internal/domain/pricing"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
	"github.com/xenking/indigo-rentals/internal/domain/recommend"
)

// Estimate prices a cart without storing anything. The response carries the
// fee breakdown, the essential categories still missing from the cart and
// the suggested quantity of every line for the guest count.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	d, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	req, err := decodeEstimateRequest(d)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := validateEstimate(req); err != nil {
		writeError(w, r, err, "")
		return
	}

	s, err := quote.BuildCart(r.Context(), h.items, req.Lines)
	if err != nil {
		writeError(w, r, err, msgProductNotFound)
		return
	}
	if req.GuestCount > 0 {
		s.SetGuestCount(req.GuestCount)
	}
	s.SetLocation(req.Location)
	s.SetDamageWaiver(req.IncludeDamageWaiver)

	state := s.Snapshot()
	b := h.calc.Calculate(state)
	missing := recommend.MissingCategories(state)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			encodeBreakdownFields(e, b)
			e.Field("itemCount", func(e *jx.Encoder) { e.Int(state.ItemCount()) })
			e.Field("guestCount", func(e *jx.Encoder) { e.Int(state.GuestCount) })
			e.Field("lines", func(e *jx.Encoder) { encodeEstimateLines(e, state) })
			e.Field("missingCategories", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, c := range missing {
						e.Str(string(c))
					}
				})
			})
		})
	})
}

func encodeEstimateLines(e *jx.Encoder, s cart.State) {
	e.Arr(func(e *jx.Encoder) {
		for _, l := range s.Lines {
			total := l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			e.Obj(func(e *jx.Encoder) {
				e.Field("productId", func(e *jx.Encoder) { e.Str(l.Item.ID) })
				e.Field("name", func(e *jx.Encoder) { e.Str(l.Item.Name) })
				e.Field("category", func(e *jx.Encoder) { e.Str(string(l.Item.Category)) })
				e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
				e.Field("unitPrice", func(e *jx.Encoder) { e.Str(pricing.Format(l.Item.Price)) })
				e.Field("lineTotal", func(e *jx.Encoder) { e.Str(pricing.Format(total)) })
				e.Field("suggestedQuantity", func(e *jx.Encoder) {
					e.Int(recommend.SuggestedQuantity(l.Item.Category, s.GuestCount))
				})
			})
		}
	})
}

func validateEstimate(req estimateRequest) error {
	fields := map[string]string{}
	if req.GuestCount < 0 || req.GuestCount > 1000 {
		fields["guestCount"] = "must be between 1 and 1000"
	}
	if len(req.Lines) > quote.MaxLines {
		fields["lines"] = fmt.Sprintf("must have at most %d entries", quote.MaxLines)
	}
	for i, l := range req.Lines {
		if l.ProductID == "" {
			fields[fmt.Sprintf("lines[%d].productId", i)] = "is required"
		}
		switch {
		case l.Quantity < 1:
			fields[fmt.Sprintf("lines[%d].quantity", i)] = "must be at least 1"
		case l.Quantity > cart.MaxQuantity:
			fields[fmt.Sprintf("lines[%d].quantity", i)] = fmt.Sprintf("must be at most %d", cart.MaxQuantity)
		}
	}
	if len(fields) > 0 {
		return &quote.ValidationError{Fields: fields}
	}
	return nil
}
