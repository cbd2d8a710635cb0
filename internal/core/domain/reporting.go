package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the aggregate snapshot served to role dashboards.
type DashboardSummary struct {
	BarrelCounts     map[string]int  `json:"barrelCounts"` // status -> count
	WorkersPresent   int             `json:"workersPresent"`
	ActiveWorkers    int             `json:"activeWorkers"`
	PublishedRate    *Rate           `json:"publishedRate,omitempty"`
	LowStockCount    int             `json:"lowStockCount"`
	TotalDryRubberKg decimal.Decimal `json:"totalDryRubberKg"`
}
