// Package catalog holds the reference-item cache backing transaction forms.
package catalog

// Entry is one purchasable/sellable reference item. The JSON tags follow the
// backend inventory representation.
type Entry struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	UnitAmount        float64 `json:"unit_price"`
	AvailableQuantity int64   `json:"quantity_in_stock"`
}

// Snapshot is the immutable reference list held for the duration of one form
// session. It is never live-updated while a form is open; reopening the form
// loads a fresh snapshot.
type Snapshot struct {
	entries []Entry
	byID    map[int64]Entry
}

// NewSnapshot indexes the given entries.
func NewSnapshot(entries []Entry) *Snapshot {
	s := &Snapshot{
		entries: make([]Entry, len(entries)),
		byID:    make(map[int64]Entry, len(entries)),
	}
	copy(s.entries, entries)
	for _, e := range entries {
		s.byID[e.ID] = e
	}
	return s
}

// Entries returns the entries in backend order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lookup returns the entry with the given id.
func (s *Snapshot) Lookup(id int64) (Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }
