package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingReader defines the aggregate reads behind the dashboard summary.
type ReportingReader interface {
	GetBarrelStatusCounts(ctx context.Context) (map[string]int, error)
	CountWorkersPresentOn(ctx context.Context, date time.Time) (int, error)
	CountActiveWorkers(ctx context.Context) (int, error)
	CountLowStockItems(ctx context.Context) (int, error)
	// TotalDryRubberKg sums volume*drc/100 across barrels still on site.
	TotalDryRubberKg(ctx context.Context) (decimal.Decimal, error)
}

// ReportingRepositoryFacade combines all reporting repository interfaces
type ReportingRepositoryFacade interface {
	ReportingReader
}
