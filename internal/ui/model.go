// Package ui renders the terminal views: the sales and purchases lists and
// the transaction forms bound to them. The views are projections; all form
// state lives in the form controller and its line-item collection.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/counterdesk/counterdesk/internal/money"
	"github.com/counterdesk/counterdesk/internal/purchases"
	"github.com/counterdesk/counterdesk/internal/sales"
	"github.com/counterdesk/counterdesk/internal/shared"
)

type viewMode int

const (
	modeList viewMode = iota
	modeForm
)

type loadedMsg struct{ err error }

type formOpenedMsg struct {
	view *formView
	err  error
}

type submitResultMsg struct{ err error }

type deleteResultMsg struct{ err error }

// Model is the root bubbletea model for one module view.
type Model struct {
	flavor flavor
	money  *money.Formatter

	mode        viewMode
	cursor      int
	loading     bool
	status      string
	errText     string
	startInForm bool

	form *formView
}

// NewSalesModel builds the sales view.
func NewSalesModel(mod *sales.Module, formatter *money.Formatter) Model {
	return Model{flavor: salesFlavor{mod: mod}, money: formatter, loading: true}
}

// NewPurchasesModel builds the purchases view.
func NewPurchasesModel(mod *purchases.Module, formatter *money.Formatter) Model {
	return Model{flavor: purchasesFlavor{mod: mod}, money: formatter, loading: true}
}

// StartInForm opens the transaction form immediately instead of landing on the
// list.
func (m Model) StartInForm() Model {
	m.startInForm = true
	return m
}

// Init kicks off the first load.
func (m Model) Init() tea.Cmd {
	if m.startInForm {
		return tea.Batch(m.loadCmd(), m.openFormCmd())
	}
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.flavor.Load(context.Background())}
	}
}

func (m Model) openFormCmd() tea.Cmd {
	return func() tea.Msg {
		ctrl, err := m.flavor.OpenForm(context.Background())
		if err != nil {
			return formOpenedMsg{err: err}
		}
		return formOpenedMsg{view: newFormView(ctrl, m.flavor, m.money)}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return deleteResultMsg{err: m.flavor.Delete(context.Background(), id)}
	}
}

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.errText = ""
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		if n := len(m.flavor.Rows()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case formOpenedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.mode = modeForm
		m.form = msg.view
		m.errText = ""
		return m, nil

	case submitResultMsg:
		if m.form != nil {
			m.form.submitting = false
		}
		if msg.err != nil {
			if m.form != nil {
				m.form.errText = msg.err.Error()
				m.form.errIsHint = shared.IsValidation(msg.err)
			}
			return m, nil
		}
		// The controller already triggered the module reload; drop back to
		// the list and render the refreshed data.
		m.mode = modeList
		m.form = nil
		m.status = "Saved"
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.status = "Deleted"
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.flavor.Rows()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "n":
		m.loading = true
		m.status = ""
		return m, m.openFormCmd()
	case "d":
		if m.cursor < len(rows) {
			m.status = ""
			return m, m.deleteCmd(rows[m.cursor].ID)
		}
	case "r":
		m.loading = true
		m.status = ""
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.form.ctrl.Cancel()
		m.mode = modeList
		m.form = nil
		return m, nil
	}
	cmd := m.form.handleKey(msg)
	return m, cmd
}

// View renders the active view.
func (m Model) View() string {
	if m.mode == modeForm && m.form != nil {
		return m.form.render()
	}
	return m.renderList()
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" "+m.flavor.Title()+" ") + "\n\n")

	if m.loading {
		b.WriteString("  Loading...\n")
		return b.String()
	}

	for _, fig := range m.flavor.SummaryFigures(m.money) {
		b.WriteString(summaryStyle.Render(fmt.Sprintf("  %s: %s", fig.Label, fig.Value)) + "\n")
	}
	b.WriteString("\n")

	rows := m.flavor.Rows()
	if len(rows) == 0 {
		b.WriteString(helpStyle.Render("  Nothing recorded yet.") + "\n")
	}
	for i, row := range rows {
		line := fmt.Sprintf("  #%d  %-24s %12s  %s",
			row.ID, row.Title, m.money.Format(row.Total), row.Created.Format("2006-01-02"))
		if i == m.cursor {
			line = selectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + successStyle.Render("  "+m.status) + "\n")
	}
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.errText) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  n: new  d: delete  r: refresh  q: quit") + "\n")
	return boxStyle.Render(b.String())
}
