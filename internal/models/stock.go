package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a row of the stock_items table.
type StockItem struct {
	ItemID       string          `db:"item_id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	Unit         string          `db:"unit"`
	Quantity     decimal.Decimal `db:"quantity"`
	ReorderLevel decimal.Decimal `db:"reorder_level"`
	Location     string          `db:"location"`
	AuditFields
}

// StockMovement is a row of the append-only stock_movements table.
type StockMovement struct {
	MovementID        string          `db:"movement_id"`
	ItemID            string          `db:"item_id"`
	Delta             decimal.Decimal `db:"delta"`
	Reason            string          `db:"reason"`
	ResultingQuantity decimal.Decimal `db:"resulting_quantity"`
	RecordedAt        time.Time       `db:"recorded_at"`
	RecordedBy        string          `db:"recorded_by"`
}
