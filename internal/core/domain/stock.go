package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a countable inventory item (chemicals, cups, sheets, fuel...).
type StockItem struct {
	ItemID       string          `json:"itemID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"` // e.g. "kg", "litre", "count"
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Location     string          `json:"location,omitempty"`
	AuditFields
}

// IsLow reports whether the item is at or below its reorder level.
func (s StockItem) IsLow() bool {
	return s.Quantity.LessThanOrEqual(s.ReorderLevel)
}

// StockMovement is one append-only entry in the stock audit trail.
type StockMovement struct {
	MovementID        string          `json:"movementID"` // Primary Key (UUID)
	ItemID            string          `json:"itemID"`
	Delta             decimal.Decimal `json:"delta"` // signed quantity change
	Reason            string          `json:"reason,omitempty"`
	ResultingQuantity decimal.Decimal `json:"resultingQuantity"`
	RecordedAt        time.Time       `json:"recordedAt"`
	RecordedBy        string          `json:"recordedBy"`
}
