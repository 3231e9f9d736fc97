package cart

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
)

func newTestItem(id string, category catalog.Category) catalog.Item {
	return catalog.Item{
		ID:       id,
		Name:     "Item " + id,
		Price:    decimal.RequireFromString("10.00"),
		Category: category,
	}
}

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore()

	assert.Equal(t, 50, s.GuestCount())
	assert.Empty(t, s.Location())
	assert.False(t, s.IncludeDamageWaiver())
	assert.False(t, s.IsOpen())
	assert.Zero(t, s.ItemCount())
	assert.Empty(t, s.Lines())
}

func TestAddItem_SameItemTwice(t *testing.T) {
	s := NewStore()
	chair := newTestItem("chair", catalog.CategorySeating)

	s.AddItem(chair)
	s.AddItem(chair)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "chair", lines[0].Item.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, s.ItemCount())
}

func TestAddItem_InsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(newTestItem("b", catalog.CategoryDecor))
	s.AddItem(newTestItem("a", catalog.CategoryDecor))
	s.AddItem(newTestItem("b", catalog.CategoryDecor))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].Item.ID)
	assert.Equal(t, "a", lines[1].Item.ID)
}

func TestAddQuantity(t *testing.T) {
	s := NewStore()
	table := newTestItem("table", catalog.CategoryTables)

	s.AddQuantity(table, 0)
	s.AddQuantity(table, -3)
	assert.Empty(t, s.Lines())

	s.AddQuantity(table, 7)
	s.AddItem(table)
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 8, s.Lines()[0].Quantity)
}

func TestAddQuantity_CapsAtMax(t *testing.T) {
	s := NewStore()
	chair := newTestItem("chair", catalog.CategorySeating)

	s.AddQuantity(chair, math.MaxInt)
	s.AddQuantity(chair, 1)
	s.AddItem(chair)
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, MaxQuantity, s.Lines()[0].Quantity)
	assert.Equal(t, MaxQuantity, s.ItemCount())

	s.AddQuantity(newTestItem("table", catalog.CategoryTables), MaxQuantity+5)
	assert.Equal(t, 2*MaxQuantity, s.ItemCount())
	for _, l := range s.Lines() {
		assert.Positive(t, l.Quantity)
	}
}

func TestUpdateQuantity_CapsAtMax(t *testing.T) {
	s := NewStore()
	chair := newTestItem("chair", catalog.CategorySeating)
	s.AddItem(chair)

	s.UpdateQuantity("chair", math.MaxInt)
	assert.Equal(t, MaxQuantity, s.Lines()[0].Quantity)

	s.AddQuantity(chair, math.MaxInt)
	assert.Equal(t, MaxQuantity, s.Lines()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem(newTestItem("a", catalog.CategoryDecor))
	s.AddItem(newTestItem("b", catalog.CategoryDecor))

	s.RemoveItem("missing")
	assert.Len(t, s.Lines(), 2)

	s.RemoveItem("a")
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].Item.ID)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets quantity", func(t *testing.T) {
		s := NewStore()
		s.AddItem(newTestItem("a", catalog.CategoryDecor))

		s.UpdateQuantity("a", 5)
		assert.Equal(t, 5, s.ItemCount())
	})

	t.Run("zero removes line", func(t *testing.T) {
		s := NewStore()
		s.AddItem(newTestItem("a", catalog.CategoryDecor))

		s.UpdateQuantity("a", 0)
		assert.Empty(t, s.Lines())
	})

	t.Run("negative removes line", func(t *testing.T) {
		s := NewStore()
		s.AddItem(newTestItem("a", catalog.CategoryDecor))

		s.UpdateQuantity("a", -2)
		assert.Empty(t, s.Lines())
	})

	t.Run("removed id is not resurrected", func(t *testing.T) {
		s := NewStore()
		s.AddItem(newTestItem("a", catalog.CategoryDecor))
		s.UpdateQuantity("a", 0)

		s.UpdateQuantity("a", 4)
		assert.Empty(t, s.Lines())
		assert.Zero(t, s.ItemCount())
	})
}

func TestClear_KeepsEventParameters(t *testing.T) {
	s := NewStore()
	s.AddItem(newTestItem("a", catalog.CategoryDecor))
	s.SetGuestCount(120)
	s.SetLocation("Round Rock, TX")
	s.SetDamageWaiver(true)
	s.Open()

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.Equal(t, 120, s.GuestCount())
	assert.Equal(t, "Round Rock, TX", s.Location())
	assert.True(t, s.IncludeDamageWaiver())
	assert.True(t, s.IsOpen())
}

func TestVisibility(t *testing.T) {
	s := NewStore()

	s.Toggle()
	assert.True(t, s.IsOpen())
	s.Toggle()
	assert.False(t, s.IsOpen())
	s.Open()
	s.Open()
	assert.True(t, s.IsOpen())
	s.Close()
	assert.False(t, s.IsOpen())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore()
	s.AddItem(newTestItem("a", catalog.CategoryDecor))

	snap := s.Snapshot()
	snap.Lines[0].Quantity = 99

	assert.Equal(t, 1, s.ItemCount())
	assert.Equal(t, 99, snap.ItemCount())
}

func TestStore_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	items := []catalog.Item{
		newTestItem("a", catalog.CategorySeating),
		newTestItem("b", catalog.CategoryTables),
		newTestItem("c", catalog.CategoryLinens),
		newTestItem("d", catalog.CategoryLighting),
	}

	s := NewStore()
	for range 2000 {
		it := items[rng.IntN(len(items))]
		switch rng.IntN(3) {
		case 0:
			s.AddItem(it)
		case 1:
			s.RemoveItem(it.ID)
		case 2:
			s.UpdateQuantity(it.ID, rng.IntN(7)-2)
		}

		sum := 0
		seen := make(map[string]bool)
		for _, l := range s.Lines() {
			require.Positive(t, l.Quantity)
			require.False(t, seen[l.Item.ID], "duplicate line for %s", l.Item.ID)
			seen[l.Item.ID] = true
			sum += l.Quantity
		}
		require.Equal(t, sum, s.ItemCount())
		require.Equal(t, sum, s.Snapshot().ItemCount())
	}
}
