// Package sales implements the sales module: the list view state, the wire
// payloads and the transaction-form wiring for creating sales.
package sales

import (
	"time"

	"github.com/counterdesk/counterdesk/internal/form"
)

// SaleItem is one line of a recorded sale as returned by the backend.
type SaleItem struct {
	ID                int64   `json:"id"`
	InventoryItemID   int64   `json:"inventory_item_id"`
	InventoryItemName string  `json:"inventory_item_name"`
	Quantity          int64   `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
}

// Sale is a recorded sale. TotalAmount is computed server-side.
type Sale struct {
	ID            int64      `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail *string    `json:"customer_email,omitempty"`
	Items         []SaleItem `json:"items"`
	TotalAmount   float64    `json:"total_amount"`
	CreatedBy     int64      `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	Notes         *string    `json:"notes,omitempty"`
}

// CreateSaleItem is one line of the sale-creation payload.
type CreateSaleItem struct {
	InventoryItemID int64   `json:"inventory_item_id"`
	Quantity        int64   `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
}

// CreateSaleRequest is the sale-creation payload. Absent optional fields
// marshal as null, never as empty strings.
type CreateSaleRequest struct {
	CustomerName  string           `json:"customer_name" validate:"required"`
	CustomerEmail *string          `json:"customer_email"`
	Items         []CreateSaleItem `json:"items" validate:"required,min=1,dive"`
	Notes         *string          `json:"notes"`
}

// NewCreateSaleRequest maps a serialized draft onto the sales wire flavor.
func NewCreateSaleRequest(sub form.Submission) CreateSaleRequest {
	req := CreateSaleRequest{
		CustomerName:  sub.CounterpartyName,
		CustomerEmail: sub.CounterpartyEmail,
		Notes:         sub.Notes,
		Items:         make([]CreateSaleItem, 0, len(sub.Items)),
	}
	for _, item := range sub.Items {
		req.Items = append(req.Items, CreateSaleItem{
			InventoryItemID: item.CatalogEntryID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitAmount,
		})
	}
	return req
}

// Summary holds the figures shown above the sales table.
type Summary struct {
	Count        int
	TotalRevenue float64
	AverageSale  float64
}

// Summarize computes the sales summary figures.
func Summarize(sales []Sale) Summary {
	s := Summary{Count: len(sales)}
	for _, sale := range sales {
		s.TotalRevenue += sale.TotalAmount
	}
	if s.Count > 0 {
		s.AverageSale = s.TotalRevenue / float64(s.Count)
	}
	return s
}
