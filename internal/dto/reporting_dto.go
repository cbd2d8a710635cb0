package dto

import (
	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// DashboardSummaryResponse is the aggregate snapshot for role dashboards.
type DashboardSummaryResponse struct {
	BarrelCounts     map[string]int  `json:"barrelCounts"`
	WorkersPresent   int             `json:"workersPresent"`
	ActiveWorkers    int             `json:"activeWorkers"`
	PublishedRate    *RateResponse   `json:"publishedRate,omitempty"`
	LowStockCount    int             `json:"lowStockCount"`
	TotalDryRubberKg decimal.Decimal `json:"totalDryRubberKg"`
}

// ToDashboardSummaryResponse converts the domain summary to its API shape
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	resp := DashboardSummaryResponse{
		BarrelCounts:     s.BarrelCounts,
		WorkersPresent:   s.WorkersPresent,
		ActiveWorkers:    s.ActiveWorkers,
		LowStockCount:    s.LowStockCount,
		TotalDryRubberKg: s.TotalDryRubberKg,
	}
	if s.PublishedRate != nil {
		r := ToRateResponse(s.PublishedRate)
		resp.PublishedRate = &r
	}
	return resp
}
