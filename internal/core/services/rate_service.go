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
	"github.com/palamattam/rubber_plant_app/internal/utils/pagination"
	"github.com/palamattam/rubber_plant_app/pkg/cache"
)

// RateFetcher abstracts the upstream price source so the service can be
// tested without scraping anything.
type RateFetcher interface {
	Fetch(ctx context.Context) (*domain.FetchedRate, error)
}

const defaultRateUnit = "INR/100kg"

// rateService implements the rate pipeline: manual proposals, scheduler
// writes, the verify/publish gate, history and fallback resolution.
type rateService struct {
	rateRepo  portsrepo.RateRepositoryFacade
	fetcher   RateFetcher
	rateCache *cache.RateCache
	publisher portssvc.RateEventPublisher
	saneMin   decimal.Decimal
	saneMax   decimal.Decimal
	location  *time.Location
}

// NewRateService creates the rate service. fetcher, rateCache and publisher
// may each be nil; live fetching, caching and event fanout degrade
// independently. location is the plant's local timezone, used to bucket
// automated fetches into calendar days; nil means UTC.
func NewRateService(
	rateRepo portsrepo.RateRepositoryFacade,
	fetcher RateFetcher,
	rateCache *cache.RateCache,
	publisher portssvc.RateEventPublisher,
	saneMin, saneMax decimal.Decimal,
	location *time.Location,
) portssvc.RateSvcFacade {
	if location == nil {
		location = time.UTC
	}
	return &rateService{
		rateRepo:  rateRepo,
		fetcher:   fetcher,
		rateCache: rateCache,
		publisher: publisher,
		saneMin:   saneMin,
		saneMax:   saneMax,
		location:  location,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

func (s *rateService) publish(eventType string, rate *domain.Rate) {
	if s.publisher != nil {
		s.publisher.PublishRateEvent(eventType, rate)
	}
}

// ProposeRate records a manually entered rate. Manual entries carry exactly
// the same weight as scheduler entries: they start pending and need a second
// pair of eyes before publication.
func (s *rateService) ProposeRate(ctx context.Context, req dto.ProposeRateRequest, creatorUserID string) (*domain.Rate, error) {
	if req.CompanyRate.LessThanOrEqual(decimal.Zero) || req.MarketRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rates must be positive", apperrors.ErrValidation)
	}

	product := req.Product
	if product == "" {
		product = domain.DefaultProduct
	}
	unit := req.Unit
	if unit == "" {
		unit = defaultRateUnit
	}
	effectiveDate := time.Now().UTC()
	if req.EffectiveDate != nil {
		effectiveDate = req.EffectiveDate.UTC()
	}

	now := time.Now()
	rate := domain.Rate{
		RateID:        uuid.NewString(),
		Product:       product,
		CompanyRate:   req.CompanyRate,
		MarketRate:    req.MarketRate,
		Unit:          unit,
		Source:        domain.RateSourceManual,
		Status:        domain.RateStatusPending,
		EffectiveDate: effectiveDate,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to propose rate in service: %w", err)
	}

	if err := s.appendHistory(ctx, rate); err != nil {
		return nil, err
	}

	s.publish("rate.proposed", &rate)
	return &rate, nil
}

// UpdateRate edits an existing rate. Any edit demotes the record back to
// pending and clears its verification, whatever its previous status.
func (s *rateService) UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest, requestingUserID string) (*domain.Rate, error) {
	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate for update: %w", err)
	}

	if req.CompanyRate != nil {
		if req.CompanyRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: company rate must be positive", apperrors.ErrValidation)
		}
		rate.CompanyRate = *req.CompanyRate
	}
	if req.MarketRate != nil {
		if req.MarketRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: market rate must be positive", apperrors.ErrValidation)
		}
		rate.MarketRate = *req.MarketRate
	}
	if req.Unit != nil {
		rate.Unit = *req.Unit
	}
	if req.EffectiveDate != nil {
		rate.EffectiveDate = req.EffectiveDate.UTC()
	}
	if req.Notes != nil {
		rate.Notes = *req.Notes
	}

	rate.Status = domain.RateStatusPending
	rate.VerifiedBy = ""
	rate.VerifiedAt = nil
	rate.LastUpdatedAt = time.Now()
	rate.LastUpdatedBy = requestingUserID

	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		return nil, fmt.Errorf("failed to update rate in service: %w", err)
	}

	// The previously published value may just have been demoted.
	s.rateCache.InvalidatePublishedLatest(ctx, rate.Product)

	if err := s.appendHistory(ctx, *rate); err != nil {
		return nil, err
	}

	s.publish("rate.updated", rate)
	return rate, nil
}

// VerifyRate publishes a pending rate. Verifying an already published rate
// is idempotent: it succeeds and refreshes the verification stamp.
func (s *rateService) VerifyRate(ctx context.Context, rateID string, verifierUserID string) (*domain.Rate, error) {
	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate for verification: %w", err)
	}

	now := time.Now()
	rate.Status = domain.RateStatusPublished
	rate.VerifiedBy = verifierUserID
	rate.VerifiedAt = &now
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = verifierUserID

	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		return nil, fmt.Errorf("failed to verify rate in service: %w", err)
	}

	s.rateCache.InvalidatePublishedLatest(ctx, rate.Product)
	s.publish("rate.published", rate)
	return rate, nil
}

func (s *rateService) GetRateByID(ctx context.Context, rateID string) (*domain.Rate, error) {
	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate by ID in service: %w", err)
	}
	return rate, nil
}

func (s *rateService) GetLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	if product == "" {
		product = domain.DefaultProduct
	}
	rate, err := s.rateRepo.FindLatestRate(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest rate in service: %w", err)
	}
	return rate, nil
}

// GetPublishedLatestRate serves the authoritative public rate. Only verified
// records qualify; a pending record never leaks through this path.
func (s *rateService) GetPublishedLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	if product == "" {
		product = domain.DefaultProduct
	}

	if cached, ok := s.rateCache.GetPublishedLatest(ctx, product); ok {
		return cached, nil
	}

	rate, err := s.rateRepo.FindLatestPublishedRate(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to get published rate in service: %w", err)
	}

	s.rateCache.SetPublishedLatest(ctx, rate)
	return rate, nil
}

func (s *rateService) ListRateHistory(ctx context.Context, product string, limit int, nextToken string) ([]domain.RateHistoryEntry, string, error) {
	if product == "" {
		product = domain.DefaultProduct
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var before *time.Time
	if nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		before = &cursor
	}

	entries, err := s.rateRepo.ListHistory(ctx, product, limit, before)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list rate history in service: %w", err)
	}

	var newToken string
	if len(entries) == limit {
		newToken = pagination.EncodeDateBasedToken(entries[len(entries)-1].RecordedAt)
	}
	return entries, newToken, nil
}

// FetchLiveRate scrapes the upstream sources without touching the store.
func (s *rateService) FetchLiveRate(ctx context.Context) (*domain.FetchedRate, error) {
	if s.fetcher == nil {
		return nil, errors.New("no rate fetcher configured")
	}
	fetched, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if fetched.Rate.LessThan(s.saneMin) || fetched.Rate.GreaterThan(s.saneMax) {
		return nil, fmt.Errorf("fetched rate %s outside sane range [%s, %s]", fetched.Rate, s.saneMin, s.saneMax)
	}
	return fetched, nil
}

// StoreFetchedRate writes the day's automated rate with overwrite semantics:
// re-running the pipeline replaces today's scheduler record instead of
// stacking duplicates. The day boundary is the plant's local calendar day,
// so an early-morning manual trigger and the daily run collapse into one
// record. The record lands pending; no machine publishes.
func (s *rateService) StoreFetchedRate(ctx context.Context, fetched domain.FetchedRate) (*domain.Rate, error) {
	now := time.Now()
	fetchedAt := fetched.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = now.UTC()
	}
	local := fetchedAt.In(s.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rate := domain.Rate{
		RateID:        uuid.NewString(),
		Product:       fetched.Product,
		CompanyRate:   fetched.Rate,
		MarketRate:    fetched.Rate,
		Unit:          defaultRateUnit,
		Source:        fetched.Source,
		Status:        domain.RateStatusPending,
		EffectiveDate: fetchedAt,
		FetchedFrom:   fetched.FetchedFrom,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "scheduler",
			LastUpdatedAt: now,
			LastUpdatedBy: "scheduler",
		},
	}

	stored, err := s.rateRepo.UpsertDailyRate(ctx, rate, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to store fetched rate in service: %w", err)
	}

	if err := s.appendHistory(ctx, *stored); err != nil {
		return nil, err
	}

	s.publish("rate.fetched", stored)
	return stored, nil
}

// ResolveFallbackRate produces a best-effort value when every source is
// down: the most recent record of any status, re-labeled so consumers can
// see it is recycled data.
func (s *rateService) ResolveFallbackRate(ctx context.Context) (*domain.FetchedRate, error) {
	last, err := s.rateRepo.FindLatestRate(ctx, domain.DefaultProduct)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no previous rate available for fallback: %w", err)
		}
		return nil, fmt.Errorf("failed to resolve fallback rate: %w", err)
	}

	// Never recycle a non-positive value; better no rate than a broken one.
	if last.MarketRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("last known rate %s is not positive, refusing fallback", last.MarketRate)
	}

	return &domain.FetchedRate{
		Product:     last.Product,
		Rate:        last.MarketRate,
		Source:      domain.RateSourceCacheLastKnown,
		FetchedFrom: last.FetchedFrom,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (s *rateService) PruneHistory(ctx context.Context, before time.Time) (int64, error) {
	removed, err := s.rateRepo.PruneHistoryBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune rate history in service: %w", err)
	}
	return removed, nil
}

func (s *rateService) appendHistory(ctx context.Context, rate domain.Rate) error {
	entry := domain.RateHistoryEntry{
		EntryID:       uuid.NewString(),
		Product:       rate.Product,
		CompanyRate:   rate.CompanyRate,
		MarketRate:    rate.MarketRate,
		Source:        rate.Source,
		FetchedFrom:   rate.FetchedFrom,
		EffectiveDate: rate.EffectiveDate,
		RecordedAt:    time.Now().UTC(),
	}
	if err := s.rateRepo.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("failed to append rate history: %w", err)
	}
	return nil
}
