// Package purchases implements the purchases module: the list view state, the
// wire payloads and the transaction-form wiring for recording purchases.
package purchases

import (
	"time"

	"github.com/counterdesk/counterdesk/internal/form"
)

// PurchaseItem is one line of a recorded purchase as returned by the backend.
type PurchaseItem struct {
	ID                int64   `json:"id"`
	InventoryItemID   int64   `json:"inventory_item_id"`
	InventoryItemName string  `json:"inventory_item_name"`
	Quantity          int64   `json:"quantity"`
	UnitCost          float64 `json:"unit_cost"`
}

// Purchase is a recorded purchase. TotalAmount is computed server-side.
type Purchase struct {
	ID            int64          `json:"id"`
	SupplierName  string         `json:"supplier_name"`
	SupplierEmail *string        `json:"supplier_email,omitempty"`
	Items         []PurchaseItem `json:"items"`
	TotalAmount   float64        `json:"total_amount"`
	CreatedBy     int64          `json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	Notes         *string        `json:"notes,omitempty"`
}

// CreatePurchaseItem is one line of the purchase-creation payload. The unit
// amount travels as unit_cost on this flavor.
type CreatePurchaseItem struct {
	InventoryItemID int64   `json:"inventory_item_id"`
	Quantity        int64   `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
}

// CreatePurchaseRequest is the purchase-creation payload. Absent optional
// fields marshal as null, never as empty strings.
type CreatePurchaseRequest struct {
	SupplierName  string               `json:"supplier_name" validate:"required"`
	SupplierEmail *string              `json:"supplier_email"`
	Items         []CreatePurchaseItem `json:"items" validate:"required,min=1,dive"`
	Notes         *string              `json:"notes"`
}

// NewCreatePurchaseRequest maps a serialized draft onto the purchases wire
// flavor.
func NewCreatePurchaseRequest(sub form.Submission) CreatePurchaseRequest {
	req := CreatePurchaseRequest{
		SupplierName:  sub.CounterpartyName,
		SupplierEmail: sub.CounterpartyEmail,
		Notes:         sub.Notes,
		Items:         make([]CreatePurchaseItem, 0, len(sub.Items)),
	}
	for _, item := range sub.Items {
		req.Items = append(req.Items, CreatePurchaseItem{
			InventoryItemID: item.CatalogEntryID,
			Quantity:        item.Quantity,
			UnitCost:        item.UnitAmount,
		})
	}
	return req
}

// Summary holds the figures shown above the purchases table.
type Summary struct {
	Count           int
	TotalCost       float64
	AveragePurchase float64
}

// Summarize computes the purchases summary figures.
func Summarize(purchases []Purchase) Summary {
	s := Summary{Count: len(purchases)}
	for _, p := range purchases {
		s.TotalCost += p.TotalAmount
	}
	if s.Count > 0 {
		s.AveragePurchase = s.TotalCost / float64(s.Count)
	}
	return s
}
