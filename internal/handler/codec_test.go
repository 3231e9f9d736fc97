package handler

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/indigo-rentals/internal/domain/quote"
)

func TestDecodeQuoteRequest(t *testing.T) {
	req, err := decodeQuoteRequest(jx.DecodeStr(validQuote))
	require.NoError(t, err)

	assert.Equal(t, quote.Request{
		Name:                "Ada Lovelace",
		Email:               "ada@example.com",
		EventType:           "wedding",
		EventDate:           "2026-06-20",
		GuestCount:          80,
		Location:            "Austin",
		Message:             "Garden ceremony",
		IncludeDamageWaiver: true,
		Lines:               []quote.LineRequest{{ProductID: "velvet-chair", Quantity: 10}},
	}, req)
}

func TestDecodeEstimateRequest(t *testing.T) {
	req, err := decodeEstimateRequest(jx.DecodeStr(`{
		"guestCount": 120,
		"location": null,
		"includeDamageWaiver": true,
		"unknown": {"nested": [1, 2]},
		"lines": [{"productId": "silk-runner", "quantity": 3}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, estimateRequest{
		GuestCount:          120,
		IncludeDamageWaiver: true,
		Lines:               []quote.LineRequest{{ProductID: "silk-runner", Quantity: 3}},
	}, req)
}

func TestDecode_WrongType(t *testing.T) {
	_, err := decodeQuoteRequest(jx.DecodeStr(`{"name": "A", "guestCount": "many"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBadBody))
	assert.Contains(t, err.Error(), `field "guestCount"`)

	_, err = decodeEstimateRequest(jx.DecodeStr(`{"lines": "nope"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBadBody))
	assert.Contains(t, err.Error(), `field "lines"`)
}
