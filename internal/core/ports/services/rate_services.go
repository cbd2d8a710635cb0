package services

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

// RateReaderSvc defines read operations for rate data
type RateReaderSvc interface {
	// GetRateByID retrieves a rate record by ID.
	GetRateByID(ctx context.Context, rateID string) (*domain.Rate, error)

	// GetLatestRate retrieves the most recent rate regardless of status.
	GetLatestRate(ctx context.Context, product string) (*domain.Rate, error)

	// GetPublishedLatestRate retrieves the most recent verified rate only.
	GetPublishedLatestRate(ctx context.Context, product string) (*domain.Rate, error)

	// ListRateHistory retrieves a cursor-paginated page of history entries.
	ListRateHistory(ctx context.Context, product string, limit int, nextToken string) ([]domain.RateHistoryEntry, string, error)
}

// RateWriterSvc defines write operations for rate data
type RateWriterSvc interface {
	// ProposeRate records a manually entered rate in pending status.
	ProposeRate(ctx context.Context, req dto.ProposeRateRequest, creatorUserID string) (*domain.Rate, error)

	// UpdateRate edits a rate record and resets it to pending.
	UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest, requestingUserID string) (*domain.Rate, error)

	// VerifyRate marks a pending rate as published.
	VerifyRate(ctx context.Context, rateID string, verifierUserID string) (*domain.Rate, error)
}

// RateFetchSvc defines scrape and fallback operations used by the scheduler
// and the on-demand live endpoint.
type RateFetchSvc interface {
	// FetchLiveRate scrapes the upstream sources without persisting anything.
	FetchLiveRate(ctx context.Context) (*domain.FetchedRate, error)

	// StoreFetchedRate upserts the day's scheduler-sourced rate in pending status.
	StoreFetchedRate(ctx context.Context, fetched domain.FetchedRate) (*domain.Rate, error)

	// ResolveFallbackRate produces a best-effort rate from the last known record.
	ResolveFallbackRate(ctx context.Context) (*domain.FetchedRate, error)

	// PruneHistory deletes history entries older than the retention window.
	PruneHistory(ctx context.Context, before time.Time) (int64, error)
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
	RateFetchSvc
}

// RateEventPublisher pushes rate lifecycle events to connected clients.
type RateEventPublisher interface {
	PublishRateEvent(eventType string, rate *domain.Rate)
}
