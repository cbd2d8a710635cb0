package services

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

// BarrelReaderSvc defines read operations for barrel data
type BarrelReaderSvc interface {
	// GetBarrelByID retrieves a barrel by ID.
	GetBarrelByID(ctx context.Context, barrelID string) (*domain.Barrel, error)

	// ListBarrels retrieves barrels, optionally filtered by status.
	ListBarrels(ctx context.Context, status *domain.BarrelStatus) ([]domain.Barrel, error)

	// ListFEFO retrieves in-storage barrels ordered by expiry date, soonest first.
	ListFEFO(ctx context.Context, asOf time.Time, limit int) ([]domain.Barrel, error)

	// ValueBarrel prices a barrel's dry rubber against the latest published rate.
	ValueBarrel(ctx context.Context, barrelID string) (*domain.Barrel, *domain.Rate, error)
}

// BarrelWriterSvc defines write operations for barrel data
type BarrelWriterSvc interface {
	// CreateBarrel registers a new barrel in storage.
	CreateBarrel(ctx context.Context, req dto.CreateBarrelRequest, creatorUserID string) (*domain.Barrel, error)

	// UpdateBarrel edits barrel measurements.
	UpdateBarrel(ctx context.Context, barrelID string, req dto.UpdateBarrelRequest, requestingUserID string) (*domain.Barrel, error)

	// TransitionBarrel moves a barrel through its lifecycle.
	TransitionBarrel(ctx context.Context, barrelID string, newStatus domain.BarrelStatus, requestingUserID string) (*domain.Barrel, error)
}

// BarrelSvcFacade combines all barrel-related service interfaces
type BarrelSvcFacade interface {
	BarrelReaderSvc
	BarrelWriterSvc
}
