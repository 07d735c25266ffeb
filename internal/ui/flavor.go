package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/counterdesk/counterdesk/internal/catalog"
	"github.com/counterdesk/counterdesk/internal/form"
	"github.com/counterdesk/counterdesk/internal/money"
	"github.com/counterdesk/counterdesk/internal/purchases"
	"github.com/counterdesk/counterdesk/internal/sales"
)

// listRow is one line of the list view, projected from either flavor.
type listRow struct {
	ID      int64
	Title   string
	Total   float64
	Created time.Time
}

// summaryFigure is one card above the list.
type summaryFigure struct {
	Label string
	Value string
}

// flavor abstracts the sales/purchases module behind the shared views. The
// two flavors differ only in endpoints, wording and whether catalog options
// carry a stock hint.
type flavor interface {
	Title() string
	CounterpartyLabel() string
	Load(ctx context.Context) error
	Rows() []listRow
	SummaryFigures(f *money.Formatter) []summaryFigure
	OpenForm(ctx context.Context) (*form.Controller, error)
	Delete(ctx context.Context, id int64) error
	OptionLabel(e catalog.Entry) string
}

type salesFlavor struct {
	mod *sales.Module
}

func (s salesFlavor) Title() string             { return "Sales" }
func (s salesFlavor) CounterpartyLabel() string { return "Customer" }

func (s salesFlavor) Load(ctx context.Context) error { return s.mod.Load(ctx) }

func (s salesFlavor) Rows() []listRow {
	items := s.mod.Sales()
	rows := make([]listRow, 0, len(items))
	for _, sale := range items {
		rows = append(rows, listRow{
			ID:      sale.ID,
			Title:   sale.CustomerName,
			Total:   sale.TotalAmount,
			Created: sale.CreatedAt,
		})
	}
	return rows
}

func (s salesFlavor) SummaryFigures(f *money.Formatter) []summaryFigure {
	sum := s.mod.Summary()
	return []summaryFigure{
		{Label: "Total Sales", Value: fmt.Sprintf("%d", sum.Count)},
		{Label: "Total Revenue", Value: f.Format(sum.TotalRevenue)},
		{Label: "Average Sale", Value: f.Format(sum.AverageSale)},
	}
}

func (s salesFlavor) OpenForm(ctx context.Context) (*form.Controller, error) {
	return s.mod.OpenForm(ctx)
}

func (s salesFlavor) Delete(ctx context.Context, id int64) error {
	return s.mod.Delete(ctx, id)
}

// OptionLabel shows remaining stock on the sales side, where overselling is
// the mistake worth preventing.
func (s salesFlavor) OptionLabel(e catalog.Entry) string {
	return fmt.Sprintf("%s (Stock: %d)", e.Name, e.AvailableQuantity)
}

type purchasesFlavor struct {
	mod *purchases.Module
}

func (p purchasesFlavor) Title() string             { return "Purchases" }
func (p purchasesFlavor) CounterpartyLabel() string { return "Supplier" }

func (p purchasesFlavor) Load(ctx context.Context) error { return p.mod.Load(ctx) }

func (p purchasesFlavor) Rows() []listRow {
	items := p.mod.Purchases()
	rows := make([]listRow, 0, len(items))
	for _, purchase := range items {
		rows = append(rows, listRow{
			ID:      purchase.ID,
			Title:   purchase.SupplierName,
			Total:   purchase.TotalAmount,
			Created: purchase.CreatedAt,
		})
	}
	return rows
}

func (p purchasesFlavor) SummaryFigures(f *money.Formatter) []summaryFigure {
	sum := p.mod.Summary()
	return []summaryFigure{
		{Label: "Total Purchases", Value: fmt.Sprintf("%d", sum.Count)},
		{Label: "Total Cost", Value: f.Format(sum.TotalCost)},
		{Label: "Average Purchase", Value: f.Format(sum.AveragePurchase)},
	}
}

func (p purchasesFlavor) OpenForm(ctx context.Context) (*form.Controller, error) {
	return p.mod.OpenForm(ctx)
}

func (p purchasesFlavor) Delete(ctx context.Context, id int64) error {
	return p.mod.Delete(ctx, id)
}

func (p purchasesFlavor) OptionLabel(e catalog.Entry) string { return e.Name }
