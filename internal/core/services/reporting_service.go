package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	rateReader    portssvc.RateReaderSvc
}

// NewReportingService creates the dashboard aggregation service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, rateReader portssvc.RateReaderSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		rateReader:    rateReader,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// DashboardSummary assembles the plant snapshot for the given day. A missing
// published rate is not an error; the summary simply omits it.
func (s *reportingService) DashboardSummary(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	barrelCounts, err := s.reportingRepo.GetBarrelStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count barrels for summary: %w", err)
	}

	workersPresent, err := s.reportingRepo.CountWorkersPresentOn(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to count present workers for summary: %w", err)
	}

	activeWorkers, err := s.reportingRepo.CountActiveWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active workers for summary: %w", err)
	}

	lowStock, err := s.reportingRepo.CountLowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock items for summary: %w", err)
	}

	totalDry, err := s.reportingRepo.TotalDryRubberKg(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total dry rubber for summary: %w", err)
	}

	summary := &domain.DashboardSummary{
		BarrelCounts:     barrelCounts,
		WorkersPresent:   workersPresent,
		ActiveWorkers:    activeWorkers,
		LowStockCount:    lowStock,
		TotalDryRubberKg: totalDry,
	}

	rate, err := s.rateReader.GetPublishedLatestRate(ctx, domain.DefaultProduct)
	switch {
	case err == nil:
		summary.PublishedRate = rate
	case errors.Is(err, apperrors.ErrNotFound):
		// No verified rate yet. Leave the field empty.
	default:
		return nil, fmt.Errorf("failed to get published rate for summary: %w", err)
	}

	return summary, nil
}
