package repositories

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// StockReader defines read operations for stock items
type StockReader interface {
	FindStockItemByID(ctx context.Context, itemID string) (*domain.StockItem, error)
	ListStockItems(ctx context.Context, category *string) ([]domain.StockItem, error)
	ListLowStockItems(ctx context.Context) ([]domain.StockItem, error)
	// ListMovements returns the append-only movement trail for an item,
	// newest first, recorded strictly before the cursor when one is given.
	ListMovements(ctx context.Context, itemID string, limit int, before *time.Time) ([]domain.StockMovement, error)
}

// StockWriter defines write operations for stock items
type StockWriter interface {
	SaveStockItem(ctx context.Context, item domain.StockItem) error
	UpdateStockItem(ctx context.Context, item domain.StockItem) error
	// AdjustStock applies a signed quantity delta and appends a movement row
	// in one transaction. The updated item and the movement are returned.
	AdjustStock(ctx context.Context, itemID string, delta domain.StockMovement) (*domain.StockItem, *domain.StockMovement, error)
}

// StockRepositoryFacade combines all stock-related repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
