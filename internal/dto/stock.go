package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// CreateStockItemRequest defines the payload for adding an inventory item.
type CreateStockItemRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Category     string          `json:"category" binding:"omitempty,max=50"`
	Unit         string          `json:"unit" binding:"required,max=20"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Location     string          `json:"location" binding:"omitempty,max=100"`
}

// UpdateStockItemRequest defines the payload for editing item metadata.
// Quantity is deliberately absent: it only changes through adjustments.
type UpdateStockItemRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Category     *string          `json:"category,omitempty" binding:"omitempty,max=50"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel,omitempty"`
	Location     *string          `json:"location,omitempty" binding:"omitempty,max=100"`
}

// AdjustStockRequest applies a signed quantity delta to an item.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason" binding:"omitempty,max=200"`
}

// StockItemResponse defines the API shape of a stock item.
type StockItemResponse struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReorderLevel  decimal.Decimal `json:"reorderLevel"`
	Location      string          `json:"location,omitempty"`
	IsLow         bool            `json:"isLow"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToStockItemResponse converts a domain.StockItem to StockItemResponse
func ToStockItemResponse(s *domain.StockItem) StockItemResponse {
	return StockItemResponse{
		ItemID:        s.ItemID,
		Name:          s.Name,
		Category:      s.Category,
		Unit:          s.Unit,
		Quantity:      s.Quantity,
		ReorderLevel:  s.ReorderLevel,
		Location:      s.Location,
		IsLow:         s.IsLow(),
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// ToListStockItemResponse converts domain stock items to response DTOs
func ToListStockItemResponse(ss []domain.StockItem) []StockItemResponse {
	responses := make([]StockItemResponse, len(ss))
	for i := range ss {
		responses[i] = ToStockItemResponse(&ss[i])
	}
	return responses
}

// StockMovementResponse is one append-only movement row.
type StockMovementResponse struct {
	MovementID        string          `json:"movementID"`
	ItemID            string          `json:"itemID"`
	Delta             decimal.Decimal `json:"delta"`
	Reason            string          `json:"reason,omitempty"`
	ResultingQuantity decimal.Decimal `json:"resultingQuantity"`
	RecordedAt        time.Time       `json:"recordedAt"`
	RecordedBy        string          `json:"recordedBy"`
}

// StockMovementsResponse is a cursor-paginated page of movements.
type StockMovementsResponse struct {
	Movements []StockMovementResponse `json:"movements"`
	NextToken string                  `json:"nextToken,omitempty"`
}

// ToStockMovementResponse converts a domain movement to its API shape
func ToStockMovementResponse(m domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		MovementID:        m.MovementID,
		ItemID:            m.ItemID,
		Delta:             m.Delta,
		Reason:            m.Reason,
		ResultingQuantity: m.ResultingQuantity,
		RecordedAt:        m.RecordedAt,
		RecordedBy:        m.RecordedBy,
	}
}
