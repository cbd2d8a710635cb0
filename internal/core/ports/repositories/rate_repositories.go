package repositories

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// RateReader defines read operations for rate records
type RateReader interface {
	FindRateByID(ctx context.Context, rateID string) (*domain.Rate, error)
	// FindLatestRate returns the most recent rate for a product by effective
	// date regardless of status.
	FindLatestRate(ctx context.Context, product string) (*domain.Rate, error)
	// FindLatestPublishedRate returns the most recent published rate for a
	// product by effective date.
	FindLatestPublishedRate(ctx context.Context, product string) (*domain.Rate, error)
	// ListHistory returns append-only history entries for a product, newest
	// first, recorded strictly before the cursor when one is given.
	ListHistory(ctx context.Context, product string, limit int, before *time.Time) ([]domain.RateHistoryEntry, error)
}

// RateWriter defines write operations for rate records
type RateWriter interface {
	SaveRate(ctx context.Context, rate domain.Rate) error
	UpdateRate(ctx context.Context, rate domain.Rate) error
	// UpsertDailyRate applies overwrite-of-the-day semantics: if a record for
	// the same (product, source) has an effective date within [dayStart,
	// dayEnd) its values are replaced, otherwise the rate is inserted. The
	// stored record is returned.
	UpsertDailyRate(ctx context.Context, rate domain.Rate, dayStart, dayEnd time.Time) (*domain.Rate, error)
	// AppendHistory records one audit entry; history rows are never updated.
	AppendHistory(ctx context.Context, entry domain.RateHistoryEntry) error
	// PruneHistoryBefore removes history entries recorded before the cutoff
	// and reports how many were removed.
	PruneHistoryBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
