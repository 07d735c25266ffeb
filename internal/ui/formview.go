package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/counterdesk/counterdesk/internal/catalog"
	"github.com/counterdesk/counterdesk/internal/form"
	"github.com/counterdesk/counterdesk/internal/money"
)

const headerFields = 3 // counterparty name, email, notes

// rowInputs are the editable widgets for one line-item row. selIdx indexes
// into the catalog entries; -1 means no item selected yet.
type rowInputs struct {
	selIdx int
	qty    textinput.Model
	amount textinput.Model
}

// formView projects a form controller into the terminal. Every edit is pushed
// straight into the controller or its collection, so the rendered total is
// always read back from the model, never computed in the view.
type formView struct {
	ctrl    *form.Controller
	flavor  flavor
	money   *money.Formatter
	entries []catalog.Entry

	name  textinput.Model
	email textinput.Model
	notes textinput.Model
	rows  []rowInputs

	focus      int
	submitting bool
	errText    string
	errIsHint  bool // validation problems render as hints, not failures
}

func newFormView(ctrl *form.Controller, fl flavor, formatter *money.Formatter) *formView {
	v := &formView{
		ctrl:    ctrl,
		flavor:  fl,
		money:   formatter,
		entries: ctrl.Items().Catalog().Entries(),
	}

	v.name = textinput.New()
	v.name.Placeholder = fl.CounterpartyLabel() + " Name"
	v.email = textinput.New()
	v.email.Placeholder = "Email (optional)"
	v.notes = textinput.New()
	v.notes.Placeholder = "Notes (optional)"

	v.rebuildRows()
	v.setFocus(0)
	return v
}

// rebuildRows recreates the row widgets from the collection, keeping the raw
// field text the model holds.
func (v *formView) rebuildRows() {
	rows := v.ctrl.Items().Rows()
	v.rows = make([]rowInputs, len(rows))
	for i, row := range rows {
		ri := rowInputs{selIdx: -1}
		for j, e := range v.entries {
			if e.ID == row.CatalogEntryID {
				ri.selIdx = j
				break
			}
		}
		ri.qty = textinput.New()
		ri.qty.Placeholder = "Qty"
		ri.qty.CharLimit = 9
		ri.qty.SetValue(row.Quantity)
		ri.amount = textinput.New()
		ri.amount.Placeholder = "0.00"
		ri.amount.SetValue(row.UnitAmount)
		v.rows[i] = ri
	}
}

func (v *formView) fieldCount() int {
	return headerFields + len(v.rows)*3
}

// rowFor maps a field index onto (row, slot). Slot 0 is the item selector,
// 1 the quantity, 2 the unit amount.
func (v *formView) rowFor(field int) (row, slot int, ok bool) {
	if field < headerFields {
		return 0, 0, false
	}
	field -= headerFields
	return field / 3, field % 3, true
}

func (v *formView) setFocus(field int) {
	if field < 0 {
		field = v.fieldCount() - 1
	}
	if field >= v.fieldCount() {
		field = 0
	}
	v.focus = field

	v.name.Blur()
	v.email.Blur()
	v.notes.Blur()
	for i := range v.rows {
		v.rows[i].qty.Blur()
		v.rows[i].amount.Blur()
	}

	switch field {
	case 0:
		v.name.Focus()
	case 1:
		v.email.Focus()
	case 2:
		v.notes.Focus()
	default:
		row, slot, _ := v.rowFor(field)
		switch slot {
		case 1:
			v.rows[row].qty.Focus()
		case 2:
			v.rows[row].amount.Focus()
		}
	}
}

// cycleSelection moves the focused row's item selection by delta and applies
// it to the collection, which auto-fills the unit amount. The amount widget is
// then re-read from the model so the auto-filled value shows up immediately.
func (v *formView) cycleSelection(row, delta int) {
	if len(v.entries) == 0 {
		return
	}
	next := v.rows[row].selIdx + delta
	if next < 0 {
		next = len(v.entries) - 1
	}
	if next >= len(v.entries) {
		next = 0
	}
	if err := v.ctrl.Items().SetCatalogRef(row, v.entries[next].ID); err != nil {
		v.errText = err.Error()
		return
	}
	v.rows[row].selIdx = next

	updated, err := v.ctrl.Items().Row(row)
	if err == nil {
		v.rows[row].amount.SetValue(updated.UnitAmount)
	}
}

func (v *formView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.submitting {
		return nil
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyEnter, tea.KeyDown:
		v.setFocus(v.focus + 1)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		v.setFocus(v.focus - 1)
		return nil
	case tea.KeyCtrlS:
		v.errText = ""
		v.errIsHint = false
		v.submitting = true
		return v.submitCmd()
	case tea.KeyCtrlN:
		v.ctrl.Items().AddRow()
		v.rebuildRows()
		v.setFocus(headerFields + (len(v.rows)-1)*3)
		return nil
	case tea.KeyCtrlD:
		if row, _, ok := v.rowFor(v.focus); ok {
			if err := v.ctrl.Items().RemoveRow(row); err == nil {
				v.rebuildRows()
				v.setFocus(headerFields)
			}
		}
		return nil
	case tea.KeyLeft, tea.KeyRight:
		if row, slot, ok := v.rowFor(v.focus); ok && slot == 0 {
			delta := 1
			if msg.Type == tea.KeyLeft {
				delta = -1
			}
			v.cycleSelection(row, delta)
			return nil
		}
	}

	v.forwardToFocused(msg)
	return nil
}

// forwardToFocused lets the focused widget consume the key, then pushes its
// raw value into the model.
func (v *formView) forwardToFocused(msg tea.KeyMsg) {
	switch v.focus {
	case 0:
		v.name, _ = v.name.Update(msg)
		v.ctrl.SetCounterpartyName(v.name.Value())
	case 1:
		v.email, _ = v.email.Update(msg)
		v.ctrl.SetCounterpartyEmail(v.email.Value())
	case 2:
		v.notes, _ = v.notes.Update(msg)
		v.ctrl.SetNotes(v.notes.Value())
	default:
		row, slot, ok := v.rowFor(v.focus)
		if !ok {
			return
		}
		switch slot {
		case 1:
			v.rows[row].qty, _ = v.rows[row].qty.Update(msg)
			_ = v.ctrl.Items().SetQuantity(row, v.rows[row].qty.Value())
		case 2:
			v.rows[row].amount, _ = v.rows[row].amount.Update(msg)
			_ = v.ctrl.Items().SetUnitAmount(row, v.rows[row].amount.Value())
		}
	}
}

func (v *formView) submitCmd() tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return submitResultMsg{err: ctrl.Submit(context.Background())}
	}
}

func (v *formView) selectorLabel(row int) string {
	idx := v.rows[row].selIdx
	if idx < 0 || idx >= len(v.entries) {
		return "select item"
	}
	return v.flavor.OptionLabel(v.entries[idx])
}

func (v *formView) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" New "+strings.TrimSuffix(v.flavor.Title(), "s")+" ") + "\n\n")

	b.WriteString(fmt.Sprintf("  %s:\n  %s\n\n", v.flavor.CounterpartyLabel(), v.name.View()))
	b.WriteString(fmt.Sprintf("  Email:\n  %s\n\n", v.email.View()))
	b.WriteString(fmt.Sprintf("  Notes:\n  %s\n\n", v.notes.View()))

	b.WriteString(selectedStyle.Render("  Items") + "\n")
	for i := range v.rows {
		selector := fmt.Sprintf("< %s >", v.selectorLabel(i))
		if row, slot, ok := v.rowFor(v.focus); ok && row == i && slot == 0 {
			selector = selectedStyle.Render(selector)
		}
		b.WriteString(fmt.Sprintf("  %s\n", selector))
		b.WriteString(fmt.Sprintf("  Qty: %s  Price: %s\n\n", v.rows[i].qty.View(), v.rows[i].amount.View()))
	}

	b.WriteString(summaryStyle.Render("  Total: "+v.money.Format(v.ctrl.Items().Total())) + "\n")

	if v.submitting {
		b.WriteString("\n  Saving...\n")
	}
	if v.errText != "" {
		style := errorStyle
		if v.errIsHint {
			style = helpStyle
		}
		b.WriteString("\n" + style.Render("  "+v.errText) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  tab: next  \u2190/\u2192: choose item  ctrl+n: add row  ctrl+d: remove row  ctrl+s: save  esc: cancel") + "\n")
	return boxStyle.Render(b.String())
}
