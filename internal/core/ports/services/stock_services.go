package services

import (
	"context"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

// StockReaderSvc defines read operations for stock data
type StockReaderSvc interface {
	// GetStockItemByID retrieves a stock item by ID.
	GetStockItemByID(ctx context.Context, itemID string) (*domain.StockItem, error)

	// ListStockItems retrieves stock items, optionally filtered by category.
	ListStockItems(ctx context.Context, category *string) ([]domain.StockItem, error)

	// ListLowStockItems retrieves items at or below their reorder level.
	ListLowStockItems(ctx context.Context) ([]domain.StockItem, error)

	// ListMovements retrieves a cursor-paginated page of movements for an item.
	ListMovements(ctx context.Context, itemID string, limit int, nextToken string) ([]domain.StockMovement, string, error)
}

// StockWriterSvc defines write operations for stock data
type StockWriterSvc interface {
	// CreateStockItem adds a new inventory item.
	CreateStockItem(ctx context.Context, req dto.CreateStockItemRequest, creatorUserID string) (*domain.StockItem, error)

	// UpdateStockItem edits item metadata. Quantity only changes via AdjustStock.
	UpdateStockItem(ctx context.Context, itemID string, req dto.UpdateStockItemRequest, requestingUserID string) (*domain.StockItem, error)

	// AdjustStock applies a signed delta and records the movement atomically.
	AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest, requestingUserID string) (*domain.StockItem, *domain.StockMovement, error)
}

// StockSvcFacade combines all stock-related service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
