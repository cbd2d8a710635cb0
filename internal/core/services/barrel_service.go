package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

type barrelService struct {
	barrelRepo portsrepo.BarrelRepositoryFacade
	rateReader portssvc.RateReaderSvc
}

// NewBarrelService creates the barrel tracking service. Valuation needs the
// rate service to fetch the published price.
func NewBarrelService(barrelRepo portsrepo.BarrelRepositoryFacade, rateReader portssvc.RateReaderSvc) portssvc.BarrelSvcFacade {
	return &barrelService{
		barrelRepo: barrelRepo,
		rateReader: rateReader,
	}
}

var _ portssvc.BarrelSvcFacade = (*barrelService)(nil)

// CreateBarrel registers a barrel fresh from collection. New barrels always
// start in storage.
func (s *barrelService) CreateBarrel(ctx context.Context, req dto.CreateBarrelRequest, creatorUserID string) (*domain.Barrel, error) {
	if err := validateBarrelMeasurements(req.CapacityLitres, req.VolumeLitres, req.DRCPercent); err != nil {
		return nil, err
	}

	if _, err := s.barrelRepo.FindBarrelByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: barrel code %q already registered", apperrors.ErrDuplicate, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check barrel code: %w", err)
	}

	now := time.Now()
	collectedAt := now
	if req.CollectedAt != nil {
		collectedAt = *req.CollectedAt
	}
	if !req.ExpiryDate.After(collectedAt) {
		return nil, fmt.Errorf("%w: expiry date must be after collection", apperrors.ErrValidation)
	}

	barrel := domain.Barrel{
		BarrelID:       uuid.NewString(),
		Code:           req.Code,
		CapacityLitres: req.CapacityLitres,
		VolumeLitres:   req.VolumeLitres,
		DRCPercent:     req.DRCPercent,
		Status:         domain.BarrelStatusInStorage,
		CollectedAt:    collectedAt,
		ExpiryDate:     req.ExpiryDate,
		Location:       req.Location,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.barrelRepo.SaveBarrel(ctx, barrel); err != nil {
		return nil, fmt.Errorf("failed to create barrel in service: %w", err)
	}
	return &barrel, nil
}

func (s *barrelService) GetBarrelByID(ctx context.Context, barrelID string) (*domain.Barrel, error) {
	barrel, err := s.barrelRepo.FindBarrelByID(ctx, barrelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get barrel by ID in service: %w", err)
	}
	return barrel, nil
}

func (s *barrelService) ListBarrels(ctx context.Context, status *domain.BarrelStatus) ([]domain.Barrel, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown barrel status %q", apperrors.ErrValidation, *status)
	}
	barrels, err := s.barrelRepo.ListBarrels(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list barrels in service: %w", err)
	}
	if barrels == nil {
		return []domain.Barrel{}, nil
	}
	return barrels, nil
}

// ListFEFO orders in-storage barrels so the first to expire is used first.
func (s *barrelService) ListFEFO(ctx context.Context, asOf time.Time, limit int) ([]domain.Barrel, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	barrels, err := s.barrelRepo.ListFEFO(ctx, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list FEFO barrels in service: %w", err)
	}
	if barrels == nil {
		return []domain.Barrel{}, nil
	}
	return barrels, nil
}

func (s *barrelService) UpdateBarrel(ctx context.Context, barrelID string, req dto.UpdateBarrelRequest, requestingUserID string) (*domain.Barrel, error) {
	barrel, err := s.barrelRepo.FindBarrelByID(ctx, barrelID)
	if err != nil {
		return nil, fmt.Errorf("failed to find barrel for update: %w", err)
	}

	if req.VolumeLitres != nil {
		barrel.VolumeLitres = *req.VolumeLitres
	}
	if req.DRCPercent != nil {
		barrel.DRCPercent = *req.DRCPercent
	}
	if err := validateBarrelMeasurements(barrel.CapacityLitres, barrel.VolumeLitres, barrel.DRCPercent); err != nil {
		return nil, err
	}
	if req.ExpiryDate != nil {
		barrel.ExpiryDate = *req.ExpiryDate
	}
	if req.Location != nil {
		barrel.Location = *req.Location
	}

	barrel.LastUpdatedAt = time.Now()
	barrel.LastUpdatedBy = requestingUserID

	if err := s.barrelRepo.UpdateBarrel(ctx, *barrel); err != nil {
		return nil, fmt.Errorf("failed to update barrel in service: %w", err)
	}
	return barrel, nil
}

// TransitionBarrel moves a barrel through its lifecycle. Dispatched and
// scrapped are terminal; the lifecycle rules live on the domain type.
func (s *barrelService) TransitionBarrel(ctx context.Context, barrelID string, newStatus domain.BarrelStatus, requestingUserID string) (*domain.Barrel, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown barrel status %q", apperrors.ErrValidation, newStatus)
	}

	barrel, err := s.barrelRepo.FindBarrelByID(ctx, barrelID)
	if err != nil {
		return nil, fmt.Errorf("failed to find barrel for transition: %w", err)
	}

	if !barrel.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: cannot move barrel from %s to %s", apperrors.ErrValidation, barrel.Status, newStatus)
	}

	barrel.Status = newStatus
	barrel.LastUpdatedAt = time.Now()
	barrel.LastUpdatedBy = requestingUserID

	if err := s.barrelRepo.UpdateBarrel(ctx, *barrel); err != nil {
		return nil, fmt.Errorf("failed to transition barrel in service: %w", err)
	}
	return barrel, nil
}

// ValueBarrel prices a barrel's dry rubber content against the latest
// published rate. Pending rates never feed valuations.
func (s *barrelService) ValueBarrel(ctx context.Context, barrelID string) (*domain.Barrel, *domain.Rate, error) {
	barrel, err := s.barrelRepo.FindBarrelByID(ctx, barrelID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find barrel for valuation: %w", err)
	}

	rate, err := s.rateReader.GetPublishedLatestRate(ctx, domain.DefaultProduct)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: no published rate available for valuation", apperrors.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get published rate for valuation: %w", err)
	}

	return barrel, rate, nil
}

func validateBarrelMeasurements(capacity, volume, drc decimal.Decimal) error {
	if capacity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidation)
	}
	if volume.IsNegative() {
		return fmt.Errorf("%w: volume cannot be negative", apperrors.ErrValidation)
	}
	if volume.GreaterThan(capacity) {
		return fmt.Errorf("%w: volume cannot exceed capacity", apperrors.ErrValidation)
	}
	if drc.IsNegative() || drc.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: drc percent must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}
