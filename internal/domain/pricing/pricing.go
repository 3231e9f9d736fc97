// Package pricing derives quote estimates from a cart snapshot.
//
// All functions are pure: the same cart.State always yields the same
// Breakdown. Amounts are kept exact; rounding to cents happens only when a
// Breakdown is displayed.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects how quote requests are priced.
type Mode string

const (
	// ModeCart prices a quote from its cart contents with the Calculator.
	ModeCart Mode = "cart"
	// ModeStub returns the fixed StubBreakdown regardless of the cart.
	ModeStub Mode = "stub"
)

// Valid reports whether m is a known pricing mode.
func (m Mode) Valid() bool {
	return m == ModeCart || m == ModeStub
}

// FeeSchedule holds the fee constants used by the Calculator.
type FeeSchedule struct {
	// BaseDelivery applies to in-metro locations.
	BaseDelivery decimal.Decimal
	// OutOfAreaSurcharge is added to BaseDelivery for other locations.
	OutOfAreaSurcharge decimal.Decimal
	// LocalMarkers are matched case-insensitively against the location.
	LocalMarkers []string

	BaseSetup decimal.Decimal
	// SetupTiers are evaluated highest threshold first; the first tier whose
	// threshold is exceeded adds its surcharge. Tiers never stack.
	SetupTiers []SetupTier

	DamageWaiver decimal.Decimal
}

// SetupTier adds Surcharge to the base setup fee once the total item count
// is strictly greater than Above.
type SetupTier struct {
	Above     int
	Surcharge decimal.Decimal
}

// DefaultFees returns the standard fee schedule: $50 delivery within Austin
// (+$25 elsewhere), $75 setup (+$25 over 10 items, +$50 over 20) and a $25
// damage waiver.
func DefaultFees() FeeSchedule {
	return FeeSchedule{
		BaseDelivery:       decimal.NewFromInt(50),
		OutOfAreaSurcharge: decimal.NewFromInt(25),
		LocalMarkers:       []string{"austin", "tx"},
		BaseSetup:          decimal.NewFromInt(75),
		SetupTiers: []SetupTier{
			{Above: 20, Surcharge: decimal.NewFromInt(50)},
			{Above: 10, Surcharge: decimal.NewFromInt(25)},
		},
		DamageWaiver: decimal.NewFromInt(25),
	}
}

// Breakdown is a priced quote.
type Breakdown struct {
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	SetupFee        decimal.Decimal
	DamageWaiverFee decimal.Decimal
	Total           decimal.Decimal
}

// Equal reports whether both breakdowns hold the same amounts.
func (b Breakdown) Equal(o Breakdown) bool {
	return b.Subtotal.Equal(o.Subtotal) &&
		b.DeliveryFee.Equal(o.DeliveryFee) &&
		b.SetupFee.Equal(o.SetupFee) &&
		b.DamageWaiverFee.Equal(o.DamageWaiverFee) &&
		b.Total.Equal(o.Total)
}

// Display holds a Breakdown rendered with two decimal places.
type Display struct {
	Subtotal        string
	DeliveryFee     string
	SetupFee        string
	DamageWaiverFee string
	Total           string
}

// Display renders every amount with two decimal places.
func (b Breakdown) Display() Display {
	return Display{
		Subtotal:        Format(b.Subtotal),
		DeliveryFee:     Format(b.DeliveryFee),
		SetupFee:        Format(b.SetupFee),
		DamageWaiverFee: Format(b.DamageWaiverFee),
		Total:           Format(b.Total),
	}
}

// Format renders an amount with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// StubBreakdown returns the fixed amounts the quote endpoint historically
// answered with, independent of the submitted cart. Only ModeStub uses it.
func StubBreakdown() Breakdown {
	return Breakdown{
		Subtotal:        decimal.NewFromInt(250),
		DeliveryFee:     decimal.NewFromInt(50),
		SetupFee:        decimal.NewFromInt(75),
		DamageWaiverFee: decimal.NewFromInt(25),
		Total:           decimal.NewFromInt(400),
	}
}

func isLocal(location string, markers []string) bool {
	loc := strings.ToLower(location)
	for _, m := range markers {
		if strings.Contains(loc, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
