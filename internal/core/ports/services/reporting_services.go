package services

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// ReportingService defines operations for generating dashboard reports
type ReportingService interface {
	// DashboardSummary aggregates the plant snapshot for a given day
	DashboardSummary(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error)
}
