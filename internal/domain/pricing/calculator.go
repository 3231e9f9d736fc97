package pricing

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/xenking/indigo-rentals/internal/domain/cart"
)

// Calculator prices cart snapshots against a fee schedule.
type Calculator struct {
	fees FeeSchedule
}

// NewCalculator returns a Calculator using fees. Setup tiers are ordered
// highest threshold first regardless of how fees lists them.
func NewCalculator(fees FeeSchedule) *Calculator {
	fees.SetupTiers = slices.Clone(fees.SetupTiers)
	slices.SortFunc(fees.SetupTiers, func(a, b SetupTier) int {
		return cmp.Compare(b.Above, a.Above)
	})
	return &Calculator{fees: fees}
}

// Calculate prices the cart state.
func (c *Calculator) Calculate(s cart.State) Breakdown {
	subtotal := Subtotal(s)
	delivery := c.DeliveryFee(s.Location)
	setup := c.SetupFee(s.ItemCount())
	waiver := c.DamageWaiverFee(s.IncludeDamageWaiver)

	return Breakdown{
		Subtotal:        subtotal,
		DeliveryFee:     delivery,
		SetupFee:        setup,
		DamageWaiverFee: waiver,
		Total:           subtotal.Add(delivery).Add(setup).Add(waiver),
	}
}

// Subtotal returns the sum of unit price times quantity over all lines.
func Subtotal(s cart.State) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.Lines {
		sum = sum.Add(l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// DeliveryFee returns the base fee for local locations and the base fee plus
// the out-of-area surcharge otherwise. An empty location is out of area.
func (c *Calculator) DeliveryFee(location string) decimal.Decimal {
	if isLocal(location, c.fees.LocalMarkers) {
		return c.fees.BaseDelivery
	}
	return c.fees.BaseDelivery.Add(c.fees.OutOfAreaSurcharge)
}

// SetupFee returns the setup fee for itemCount total units.
func (c *Calculator) SetupFee(itemCount int) decimal.Decimal {
	for _, tier := range c.fees.SetupTiers {
		if itemCount > tier.Above {
			return c.fees.BaseSetup.Add(tier.Surcharge)
		}
	}
	return c.fees.BaseSetup
}

// DamageWaiverFee returns the waiver fee when included, zero otherwise.
func (c *Calculator) DamageWaiverFee(include bool) decimal.Decimal {
	if include {
		return c.fees.DamageWaiver
	}
	return decimal.Zero
}
