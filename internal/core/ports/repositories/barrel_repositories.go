package repositories

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// BarrelReader defines read operations for barrels
type BarrelReader interface {
	FindBarrelByID(ctx context.Context, barrelID string) (*domain.Barrel, error)
	FindBarrelByCode(ctx context.Context, code string) (*domain.Barrel, error)
	ListBarrels(ctx context.Context, status *domain.BarrelStatus) ([]domain.Barrel, error)
	// ListFEFO returns non-empty in-storage barrels that expire on or after
	// asOf, ordered by earliest expiry first.
	ListFEFO(ctx context.Context, asOf time.Time, limit int) ([]domain.Barrel, error)
}

// BarrelWriter defines write operations for barrels
type BarrelWriter interface {
	SaveBarrel(ctx context.Context, barrel domain.Barrel) error
	UpdateBarrel(ctx context.Context, barrel domain.Barrel) error
}

// BarrelRepositoryFacade combines all barrel-related repository interfaces
type BarrelRepositoryFacade interface {
	BarrelReader
	BarrelWriter
}
