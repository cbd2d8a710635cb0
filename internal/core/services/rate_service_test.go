package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/core/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.Rate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateRepository) FindLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateRepository) FindLatestPublishedRate(ctx context.Context, product string) (*domain.Rate, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateRepository) ListHistory(ctx context.Context, product string, limit int, before *time.Time) ([]domain.RateHistoryEntry, error) {
	args := m.Called(ctx, product, limit, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateHistoryEntry), args.Error(1)
}

func (m *MockRateRepository) SaveRate(ctx context.Context, rate domain.Rate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) UpdateRate(ctx context.Context, rate domain.Rate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) UpsertDailyRate(ctx context.Context, rate domain.Rate, dayStart, dayEnd time.Time) (*domain.Rate, error) {
	args := m.Called(ctx, rate, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateRepository) AppendHistory(ctx context.Context, entry domain.RateHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRateRepository) PruneHistoryBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RateFetcher ---
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) Fetch(ctx context.Context) (*domain.FetchedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedRate), args.Error(1)
}

// --- Mock RateEventPublisher ---
type MockRateEventPublisher struct {
	mock.Mock
}

func (m *MockRateEventPublisher) PublishRateEvent(eventType string, rate *domain.Rate) {
	m.Called(eventType, rate)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockRateRepository
	mockFetcher   *MockRateFetcher
	mockPublisher *MockRateEventPublisher
	service       portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.mockFetcher = new(MockRateFetcher)
	suite.mockPublisher = new(MockRateEventPublisher)
	suite.service = services.NewRateService(
		suite.mockRepo,
		suite.mockFetcher,
		nil, // cache disabled in unit tests
		suite.mockPublisher,
		decimal.NewFromInt(50),
		decimal.NewFromInt(50000),
		nil, // UTC day bucketing unless a test sets its own zone
	)
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestProposeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.ProposeRateRequest{
		CompanyRate: decimal.NewFromInt(180),
		MarketRate:  decimal.NewFromInt(195),
	}

	suite.mockRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.Rate) bool {
		return r.Product == domain.DefaultProduct &&
			r.Source == domain.RateSourceManual &&
			r.Status == domain.RateStatusPending &&
			r.CreatedBy == creatorUserID
	})).Return(nil).Once()
	suite.mockRepo.On("AppendHistory", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("PublishRateEvent", "rate.proposed", mock.Anything).Return().Once()

	rate, err := suite.service.ProposeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	// Manual entries are never auto-published.
	suite.Equal(domain.RateStatusPending, rate.Status)
	suite.Equal(domain.RateSourceManual, rate.Source)
	suite.Empty(rate.VerifiedBy)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestProposeRate_RejectsNonPositive() {
	ctx := context.Background()
	req := dto.ProposeRateRequest{
		CompanyRate: decimal.Zero,
		MarketRate:  decimal.NewFromInt(195),
	}

	rate, err := suite.service.ProposeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestUpdateRate_ResetsToPending() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	verifiedAt := time.Now().Add(-time.Hour)
	existing := &domain.Rate{
		RateID:      "rate-1",
		Product:     domain.DefaultProduct,
		CompanyRate: decimal.NewFromInt(180),
		MarketRate:  decimal.NewFromInt(195),
		Status:      domain.RateStatusPublished,
		VerifiedBy:  uuid.NewString(),
		VerifiedAt:  &verifiedAt,
	}
	newMarket := decimal.NewFromInt(200)

	suite.mockRepo.On("FindRateByID", ctx, "rate-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateRate", ctx, mock.MatchedBy(func(r domain.Rate) bool {
		return r.Status == domain.RateStatusPending &&
			r.VerifiedBy == "" && r.VerifiedAt == nil &&
			r.MarketRate.Equal(newMarket) &&
			r.LastUpdatedBy == requesterID
	})).Return(nil).Once()
	suite.mockRepo.On("AppendHistory", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("PublishRateEvent", "rate.updated", mock.Anything).Return().Once()

	rate, err := suite.service.UpdateRate(ctx, "rate-1", dto.UpdateRateRequest{MarketRate: &newMarket}, requesterID)

	suite.Require().NoError(err)
	suite.Equal(domain.RateStatusPending, rate.Status)
	suite.Nil(rate.VerifiedAt)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestVerifyRate_Publishes() {
	ctx := context.Background()
	verifierID := uuid.NewString()
	existing := &domain.Rate{
		RateID:  "rate-1",
		Product: domain.DefaultProduct,
		Status:  domain.RateStatusPending,
	}

	suite.mockRepo.On("FindRateByID", ctx, "rate-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateRate", ctx, mock.MatchedBy(func(r domain.Rate) bool {
		return r.Status == domain.RateStatusPublished &&
			r.VerifiedBy == verifierID && r.VerifiedAt != nil
	})).Return(nil).Once()
	suite.mockPublisher.On("PublishRateEvent", "rate.published", mock.Anything).Return().Once()

	rate, err := suite.service.VerifyRate(ctx, "rate-1", verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.RateStatusPublished, rate.Status)
	suite.Equal(verifierID, rate.VerifiedBy)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestVerifyRate_AlreadyPublishedIsIdempotent() {
	ctx := context.Background()
	verifierID := uuid.NewString()
	existing := &domain.Rate{
		RateID: "rate-1",
		Status: domain.RateStatusPublished,
	}

	suite.mockRepo.On("FindRateByID", ctx, "rate-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateRate", ctx, mock.MatchedBy(func(r domain.Rate) bool {
		return r.Status == domain.RateStatusPublished && r.VerifiedBy == verifierID
	})).Return(nil).Once()
	suite.mockPublisher.On("PublishRateEvent", "rate.published", mock.Anything).Return().Once()

	rate, err := suite.service.VerifyRate(ctx, "rate-1", verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.RateStatusPublished, rate.Status)
	suite.NotNil(rate.VerifiedAt)
}

func (suite *RateServiceTestSuite) TestFetchLiveRate_RejectsOutOfRange() {
	ctx := context.Background()
	suite.mockFetcher.On("Fetch", ctx).Return(&domain.FetchedRate{
		Product: domain.DefaultProduct,
		Rate:    decimal.NewFromInt(1000000),
		Source:  domain.RateSourceRubberBoard,
	}, nil).Once()

	fetched, err := suite.service.FetchLiveRate(ctx)

	suite.Require().Error(err)
	suite.Nil(fetched)
}

func (suite *RateServiceTestSuite) TestStoreFetchedRate_PendingAndHistory() {
	ctx := context.Background()
	fetched := domain.FetchedRate{
		Product:     domain.DefaultProduct,
		Rate:        decimal.NewFromInt(12345),
		Source:      domain.RateSourceRubberBoard,
		FetchedFrom: "https://example.org/daily",
		FetchedAt:   time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
	stored := &domain.Rate{
		RateID:      "rate-1",
		Product:     domain.DefaultProduct,
		CompanyRate: fetched.Rate,
		MarketRate:  fetched.Rate,
		Source:      domain.RateSourceRubberBoard,
		Status:      domain.RateStatusPending,
	}
	dayStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	suite.mockRepo.On("UpsertDailyRate", ctx, mock.MatchedBy(func(r domain.Rate) bool {
		return r.Status == domain.RateStatusPending &&
			r.Source == domain.RateSourceRubberBoard &&
			r.CreatedBy == "scheduler"
	}), dayStart, dayEnd).Return(stored, nil).Once()
	suite.mockRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e domain.RateHistoryEntry) bool {
		return e.Product == domain.DefaultProduct && e.Source == domain.RateSourceRubberBoard
	})).Return(nil).Once()
	suite.mockPublisher.On("PublishRateEvent", "rate.fetched", stored).Return().Once()

	result, err := suite.service.StoreFetchedRate(ctx, fetched)

	suite.Require().NoError(err)
	suite.Equal(domain.RateStatusPending, result.Status)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestStoreFetchedRate_CollapsesSamePlantDay() {
	ctx := context.Background()
	ist := time.FixedZone("IST", 5*3600+30*60)
	svc := services.NewRateService(
		suite.mockRepo,
		suite.mockFetcher,
		nil,
		suite.mockPublisher,
		decimal.NewFromInt(50),
		decimal.NewFromInt(50000),
		ist,
	)

	// 01:00 and 09:00 plant time straddle UTC midnight but share a calendar
	// day, so both fetches must land in the same upsert window.
	early := time.Date(2026, 8, 31, 1, 0, 0, 0, ist)
	daily := time.Date(2026, 8, 31, 9, 0, 0, 0, ist)
	dayStart := time.Date(2026, 8, 31, 0, 0, 0, 0, ist)
	dayEnd := dayStart.AddDate(0, 0, 1)

	stored := &domain.Rate{
		RateID:  "rate-1",
		Product: domain.DefaultProduct,
		Status:  domain.RateStatusPending,
	}
	suite.mockRepo.On("UpsertDailyRate", ctx, mock.Anything, dayStart, dayEnd).Return(stored, nil).Twice()
	suite.mockRepo.On("AppendHistory", ctx, mock.Anything).Return(nil).Twice()
	suite.mockPublisher.On("PublishRateEvent", "rate.fetched", stored).Return().Twice()

	for _, at := range []time.Time{early, daily} {
		_, err := svc.StoreFetchedRate(ctx, domain.FetchedRate{
			Product:   domain.DefaultProduct,
			Rate:      decimal.NewFromInt(12345),
			Source:    domain.RateSourceRubberBoard,
			FetchedAt: at,
		})
		suite.Require().NoError(err)
	}

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolveFallbackRate_RelabelsLastKnown() {
	ctx := context.Background()
	last := &domain.Rate{
		RateID:      "rate-1",
		Product:     domain.DefaultProduct,
		MarketRate:  decimal.NewFromInt(12345),
		Source:      domain.RateSourceRubberBoard,
		FetchedFrom: "https://example.org/daily",
	}

	suite.mockRepo.On("FindLatestRate", ctx, domain.DefaultProduct).Return(last, nil).Once()

	fallback, err := suite.service.ResolveFallbackRate(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceCacheLastKnown, fallback.Source)
	suite.True(fallback.Rate.Equal(last.MarketRate))
}

func (suite *RateServiceTestSuite) TestResolveFallbackRate_NothingStored() {
	ctx := context.Background()
	suite.mockRepo.On("FindLatestRate", ctx, domain.DefaultProduct).Return(nil, apperrors.ErrNotFound).Once()

	fallback, err := suite.service.ResolveFallbackRate(ctx)

	suite.Require().Error(err)
	suite.Nil(fallback)
}

func (suite *RateServiceTestSuite) TestResolveFallbackRate_RejectsNonPositive() {
	ctx := context.Background()
	last := &domain.Rate{
		RateID:     "rate-1",
		Product:    domain.DefaultProduct,
		MarketRate: decimal.Zero,
	}

	suite.mockRepo.On("FindLatestRate", ctx, domain.DefaultProduct).Return(last, nil).Once()

	fallback, err := suite.service.ResolveFallbackRate(ctx)

	suite.Require().Error(err)
	suite.Nil(fallback)
}

func (suite *RateServiceTestSuite) TestListRateHistory_PagesOnRecordedAt() {
	ctx := context.Background()
	now := time.Now().UTC()
	entries := make([]domain.RateHistoryEntry, 2)
	for i := range entries {
		entries[i] = domain.RateHistoryEntry{
			EntryID:    uuid.NewString(),
			Product:    domain.DefaultProduct,
			RecordedAt: now.Add(-time.Duration(i) * time.Hour),
		}
	}

	suite.mockRepo.On("ListHistory", ctx, domain.DefaultProduct, 2, (*time.Time)(nil)).Return(entries, nil).Once()

	got, token, err := suite.service.ListRateHistory(ctx, "", 2, "")

	suite.Require().NoError(err)
	suite.Len(got, 2)
	// A full page yields a cursor for the next one.
	suite.NotEmpty(token)
}

func (suite *RateServiceTestSuite) TestListRateHistory_BadToken() {
	ctx := context.Background()

	_, _, err := suite.service.ListRateHistory(ctx, "", 10, "not-base64!!!")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
