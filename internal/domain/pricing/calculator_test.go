package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/indigo-rentals/internal/domain/cart"
	"github.com/xenking/indigo-rentals/internal/domain/catalog"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func item(id, price string, category catalog.Category) catalog.Item {
	return catalog.Item{ID: id, Name: id, Price: d(price), Category: category}
}

func assertBreakdown(t *testing.T, want, got Breakdown) {
	t.Helper()
	assert.True(t, want.Subtotal.Equal(got.Subtotal), "subtotal: want %s, got %s", want.Subtotal, got.Subtotal)
	assert.True(t, want.DeliveryFee.Equal(got.DeliveryFee), "delivery: want %s, got %s", want.DeliveryFee, got.DeliveryFee)
	assert.True(t, want.SetupFee.Equal(got.SetupFee), "setup: want %s, got %s", want.SetupFee, got.SetupFee)
	assert.True(t, want.DamageWaiverFee.Equal(got.DamageWaiverFee), "waiver: want %s, got %s", want.DamageWaiverFee, got.DamageWaiverFee)
	assert.True(t, want.Total.Equal(got.Total), "total: want %s, got %s", want.Total, got.Total)
}

func TestCalculate(t *testing.T) {
	calc := NewCalculator(DefaultFees())

	tests := []struct {
		name  string
		setup func(s *cart.Store)
		want  Breakdown
	}{
		{
			name:  "empty cart, no location",
			setup: func(*cart.Store) {},
			want: Breakdown{
				Subtotal:        d("0"),
				DeliveryFee:     d("75"),
				SetupFee:        d("75"),
				DamageWaiverFee: d("0"),
				Total:           d("150"),
			},
		},
		{
			name: "three units at 10.00 delivered in Austin",
			setup: func(s *cart.Store) {
				s.AddQuantity(item("chair", "10.00", catalog.CategorySeating), 3)
				s.SetLocation("Austin, TX")
			},
			want: Breakdown{
				Subtotal:        d("30.00"),
				DeliveryFee:     d("50"),
				SetupFee:        d("75"),
				DamageWaiverFee: d("0"),
				Total:           d("155.00"),
			},
		},
		{
			name: "25 items in austin hits top setup tier only",
			setup: func(s *cart.Store) {
				s.AddQuantity(item("chair", "8.00", catalog.CategorySeating), 15)
				s.AddQuantity(item("table", "35.00", catalog.CategoryTables), 10)
				s.SetLocation("downtown austin")
			},
			want: Breakdown{
				Subtotal:        d("470.00"),
				DeliveryFee:     d("50"),
				SetupFee:        d("125"),
				DamageWaiverFee: d("0"),
				Total:           d("645.00"),
			},
		},
		{
			name: "11 items hits middle setup tier",
			setup: func(s *cart.Store) {
				s.AddQuantity(item("runner", "12.00", catalog.CategoryLinens), 11)
				s.SetLocation("Dallas")
			},
			want: Breakdown{
				Subtotal:        d("132.00"),
				DeliveryFee:     d("75"),
				SetupFee:        d("100"),
				DamageWaiverFee: d("0"),
				Total:           d("307.00"),
			},
		},
		{
			name: "damage waiver adds flat fee",
			setup: func(s *cart.Store) {
				s.AddItem(item("pendant", "45.00", catalog.CategoryLighting))
				s.SetDamageWaiver(true)
				s.SetLocation("Georgetown TX")
			},
			want: Breakdown{
				Subtotal:        d("45.00"),
				DeliveryFee:     d("50"),
				SetupFee:        d("75"),
				DamageWaiverFee: d("25"),
				Total:           d("195.00"),
			},
		},
		{
			name: "fractional prices summed exactly",
			setup: func(s *cart.Store) {
				s.AddQuantity(item("a", "0.10", catalog.CategoryDecor), 3)
				s.AddQuantity(item("b", "0.20", catalog.CategoryDecor), 1)
				s.SetLocation("AUSTIN")
			},
			want: Breakdown{
				Subtotal:        d("0.50"),
				DeliveryFee:     d("50"),
				SetupFee:        d("75"),
				DamageWaiverFee: d("0"),
				Total:           d("125.50"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cart.NewStore()
			tt.setup(s)

			assertBreakdown(t, tt.want, calc.Calculate(s.Snapshot()))
		})
	}
}

func TestSetupFee_Boundaries(t *testing.T) {
	calc := NewCalculator(DefaultFees())

	assert.Equal(t, "75", calc.SetupFee(0).String())
	assert.Equal(t, "75", calc.SetupFee(10).String())
	assert.Equal(t, "100", calc.SetupFee(11).String())
	assert.Equal(t, "100", calc.SetupFee(20).String())
	assert.Equal(t, "125", calc.SetupFee(21).String())
	assert.Equal(t, "125", calc.SetupFee(500).String())
}

func TestSetupFee_UnorderedTiers(t *testing.T) {
	fees := DefaultFees()
	fees.SetupTiers = []SetupTier{
		{Above: 10, Surcharge: decimal.NewFromInt(25)},
		{Above: 20, Surcharge: decimal.NewFromInt(50)},
	}
	calc := NewCalculator(fees)

	assert.Equal(t, "125", calc.SetupFee(25).String())
	// The caller's slice is left untouched.
	assert.Equal(t, 10, fees.SetupTiers[0].Above)
}

func TestDeliveryFee(t *testing.T) {
	calc := NewCalculator(DefaultFees())

	tests := []struct {
		location string
		want     string
	}{
		{"", "75"},
		{"Austin", "50"},
		{"AUSTIN", "50"},
		{"Cedar Park, TX", "50"},
		{"Houston, Texas", "75"},
		{"  lake travis tx  ", "50"},
		{"San Francisco, CA", "75"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.DeliveryFee(tt.location).String())
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	calc := NewCalculator(DefaultFees())
	s := cart.NewStore()
	s.AddQuantity(item("chair", "8.00", catalog.CategorySeating), 12)
	s.SetDamageWaiver(true)
	state := s.Snapshot()

	first := calc.Calculate(state)
	second := calc.Calculate(state)

	assert.True(t, first.Equal(second))
}

func TestStubBreakdown(t *testing.T) {
	b := StubBreakdown()

	disp := b.Display()
	assert.Equal(t, "250.00", disp.Subtotal)
	assert.Equal(t, "50.00", disp.DeliveryFee)
	assert.Equal(t, "75.00", disp.SetupFee)
	assert.Equal(t, "25.00", disp.DamageWaiverFee)
	assert.Equal(t, "400.00", disp.Total)
}

func TestDisplay_RoundsOnlyForOutput(t *testing.T) {
	calc := NewCalculator(DefaultFees())
	s := cart.NewStore()
	s.AddQuantity(item("a", "0.333", catalog.CategoryDecor), 3)
	s.SetLocation("austin")

	b := calc.Calculate(s.Snapshot())
	require.True(t, d("0.999").Equal(b.Subtotal))
	require.True(t, d("125.999").Equal(b.Total))
	assert.Equal(t, "1.00", b.Display().Subtotal)
	assert.Equal(t, "126.00", b.Display().Total)
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeCart.Valid())
	assert.True(t, ModeStub.Valid())
	assert.False(t, Mode("live").Valid())
}
