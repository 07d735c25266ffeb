// Package lineitem implements the mutable row collection behind transaction
// forms. The collection is the authoritative model; views project from it and
// push edits back through the Set operations.
package lineitem

import (
	"errors"
	"strconv"
	"strings"

	"github.com/counterdesk/counterdesk/internal/catalog"
)

// ErrIndexOutOfRange indicates a row operation addressed a missing row.
var ErrIndexOutOfRange = errors.New("line item index out of range")

// ErrUnknownEntry indicates a catalog reference that is not in the snapshot.
var ErrUnknownEntry = errors.New("unknown catalog entry")

// Row is one (item reference, quantity, unit amount) tuple. Quantity and unit
// amount keep the raw field text so invalid input can stay visible until
// corrected; totals coerce it on the fly.
type Row struct {
	CatalogEntryID int64 // 0 while no entry is selected
	Quantity       string
	UnitAmount     string
}

// QuantityValue parses the quantity, coercing invalid or negative input to 0.
func (r Row) QuantityValue() int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.Quantity), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// UnitAmountValue parses the unit amount, coercing invalid or negative input
// to 0.
func (r Row) UnitAmountValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.UnitAmount), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Committed reports whether the row is eligible for submission: an entry is
// selected, the quantity is an integer >= 1 and the unit amount is a number
// >= 0.
func (r Row) Committed() bool {
	if r.CatalogEntryID == 0 {
		return false
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(r.Quantity), 10, 64)
	if err != nil || qty < 1 {
		return false
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(r.UnitAmount), 64)
	if err != nil || amount < 0 {
		return false
	}
	return true
}

// Collection is the ordered row list bound to one in-progress transaction
// form. It always keeps at least one editable row so the form never renders
// empty; submission eligibility is governed solely by the committed rows.
type Collection struct {
	rows     []Row
	snapshot *catalog.Snapshot
	onChange func()
}

// New creates a collection with a single blank row, bound to the catalog
// snapshot used for unit-amount auto-fill.
func New(snapshot *catalog.Snapshot) *Collection {
	return &Collection{
		rows:     []Row{{}},
		snapshot: snapshot,
	}
}

// SetOnChange registers a hook fired synchronously after every mutation, so
// the owning view can re-render the running total without debouncing.
func (c *Collection) SetOnChange(fn func()) {
	c.onChange = fn
}

func (c *Collection) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Len returns the number of rows, committed or not.
func (c *Collection) Len() int { return len(c.rows) }

// Catalog returns the snapshot the collection was bound to, for selector
// rendering.
func (c *Collection) Catalog() *catalog.Snapshot { return c.snapshot }

// Rows returns a copy of the rows in insertion order.
func (c *Collection) Rows() []Row {
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// Row returns the row at index i.
func (c *Collection) Row(i int) (Row, error) {
	if i < 0 || i >= len(c.rows) {
		return Row{}, ErrIndexOutOfRange
	}
	return c.rows[i], nil
}

// AddRow appends a blank row. There is no upper bound on row count.
func (c *Collection) AddRow() {
	c.rows = append(c.rows, Row{})
	c.changed()
}

// RemoveRow deletes the row at index i. Removing the last remaining row
// leaves a fresh blank row in its place, so the form always has one editable
// row; the blank row never counts toward submission.
func (c *Collection) RemoveRow(i int) error {
	if i < 0 || i >= len(c.rows) {
		return ErrIndexOutOfRange
	}
	c.rows = append(c.rows[:i], c.rows[i+1:]...)
	if len(c.rows) == 0 {
		c.rows = append(c.rows, Row{})
	}
	c.changed()
	return nil
}

// SetCatalogRef binds row i to a catalog entry and auto-fills its unit amount
// from the snapshot, overwriting any previously typed value. The auto-fill
// happens exactly once per selection change; later manual edits stick until
// the reference changes again.
func (c *Collection) SetCatalogRef(i int, entryID int64) error {
	if i < 0 || i >= len(c.rows) {
		return ErrIndexOutOfRange
	}
	entry, ok := c.snapshot.Lookup(entryID)
	if !ok {
		return ErrUnknownEntry
	}
	c.rows[i].CatalogEntryID = entryID
	c.rows[i].UnitAmount = strconv.FormatFloat(entry.UnitAmount, 'f', 2, 64)
	c.changed()
	return nil
}

// SetQuantity stores the raw quantity text for row i.
func (c *Collection) SetQuantity(i int, raw string) error {
	if i < 0 || i >= len(c.rows) {
		return ErrIndexOutOfRange
	}
	c.rows[i].Quantity = raw
	c.changed()
	return nil
}

// SetUnitAmount stores the raw unit-amount text for row i.
func (c *Collection) SetUnitAmount(i int, raw string) error {
	if i < 0 || i >= len(c.rows) {
		return ErrIndexOutOfRange
	}
	c.rows[i].UnitAmount = raw
	c.changed()
	return nil
}

// Committed returns the submission-eligible rows in insertion order.
func (c *Collection) Committed() []Row {
	var out []Row
	for _, r := range c.rows {
		if r.Committed() {
			out = append(out, r)
		}
	}
	return out
}

// Total returns the sum of quantity x unit amount over the committed rows.
func (c *Collection) Total() float64 {
	var total float64
	for _, r := range c.rows {
		if r.Committed() {
			total += float64(r.QuantityValue()) * r.UnitAmountValue()
		}
	}
	return total
}
