package cart

import (
	"slices"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
)

// Store is the mutable cart for a single session. It is owned by whoever
// composes it and is not safe for concurrent use.
type Store struct {
	lines               []Line
	isOpen              bool
	guestCount          int
	location            string
	includeDamageWaiver bool
}

// NewStore returns an empty, closed cart for DefaultGuestCount guests.
func NewStore() *Store {
	return &Store{guestCount: DefaultGuestCount}
}

// AddItem adds one unit of item, appending a new line if the item is not in
// the cart yet.
func (s *Store) AddItem(item catalog.Item) {
	s.AddQuantity(item, 1)
}

// AddQuantity adds n units of item. It is equivalent to calling AddItem n
// times; n <= 0 does nothing. A line never exceeds MaxQuantity.
func (s *Store) AddQuantity(item catalog.Item, n int) {
	if n <= 0 {
		return
	}
	if i := s.index(item.ID); i >= 0 {
		s.lines[i].Quantity += min(n, MaxQuantity-s.lines[i].Quantity)
		return
	}
	s.lines = append(s.lines, Line{Item: item, Quantity: min(n, MaxQuantity)})
}

// RemoveItem deletes the line for id. Unknown ids are ignored.
func (s *Store) RemoveItem(id string) {
	if i := s.index(id); i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
}

// UpdateQuantity sets the quantity of the line for id, capped at
// MaxQuantity. A quantity of zero or less removes the line. Unknown ids are
// ignored: re-adding a removed item goes through AddItem.
func (s *Store) UpdateQuantity(id string, qty int) {
	i := s.index(id)
	if i < 0 {
		return
	}
	if qty <= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
		return
	}
	s.lines[i].Quantity = min(qty, MaxQuantity)
}

// SetGuestCount replaces the guest count. Range checks belong to the caller.
func (s *Store) SetGuestCount(n int) { s.guestCount = n }

// SetLocation replaces the free-text event location.
func (s *Store) SetLocation(location string) { s.location = location }

// SetDamageWaiver toggles the optional damage waiver.
func (s *Store) SetDamageWaiver(include bool) { s.includeDamageWaiver = include }

// Clear empties the cart. Event parameters are kept.
func (s *Store) Clear() { s.lines = nil }

func (s *Store) Open()        { s.isOpen = true }
func (s *Store) Close()       { s.isOpen = false }
func (s *Store) Toggle()      { s.isOpen = !s.isOpen }
func (s *Store) IsOpen() bool { return s.isOpen }

func (s *Store) GuestCount() int           { return s.guestCount }
func (s *Store) Location() string          { return s.location }
func (s *Store) IncludeDamageWaiver() bool { return s.includeDamageWaiver }

// ItemCount returns the sum of all line quantities.
func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	return slices.Clone(s.lines)
}

// Snapshot returns a copy of the full cart state.
func (s *Store) Snapshot() State {
	return State{
		Lines:               s.Lines(),
		IsOpen:              s.isOpen,
		GuestCount:          s.guestCount,
		Location:            s.location,
		IncludeDamageWaiver: s.includeDamageWaiver,
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.Item.ID == id })
}
