package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/scheduler"
)

// --- Mock RateFetchSvc ---
type MockRateFetchSvc struct {
	mock.Mock
}

func (m *MockRateFetchSvc) FetchLiveRate(ctx context.Context) (*domain.FetchedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedRate), args.Error(1)
}

func (m *MockRateFetchSvc) StoreFetchedRate(ctx context.Context, fetched domain.FetchedRate) (*domain.Rate, error) {
	args := m.Called(ctx, fetched)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateFetchSvc) ResolveFallbackRate(ctx context.Context) (*domain.FetchedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedRate), args.Error(1)
}

func (m *MockRateFetchSvc) PruneHistory(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type RateSchedulerTestSuite struct {
	suite.Suite
	mockSvc *MockRateFetchSvc
	sched   *scheduler.RateScheduler
}

func (s *RateSchedulerTestSuite) SetupTest() {
	s.mockSvc = new(MockRateFetchSvc)
	s.sched = scheduler.NewRateScheduler(s.mockSvc, scheduler.Config{
		TimeZone:             "Asia/Kolkata",
		DailyFetchHour:       9,
		BusinessHoursStart:   9,
		BusinessHoursEnd:     17,
		HistoryRetentionDays: 730,
	}, slog.New(slog.DiscardHandler))
}

func (s *RateSchedulerTestSuite) sampleFetched() *domain.FetchedRate {
	return &domain.FetchedRate{
		Product:     domain.DefaultProduct,
		Rate:        decimal.NewFromInt(12345),
		Source:      domain.RateSourceRubberBoard,
		FetchedFrom: "https://example.org/daily",
		FetchedAt:   time.Now().UTC(),
	}
}

func (s *RateSchedulerTestSuite) sampleStored() *domain.Rate {
	return &domain.Rate{
		RateID:     "rate-1",
		Product:    domain.DefaultProduct,
		MarketRate: decimal.NewFromInt(12345),
		Source:     domain.RateSourceRubberBoard,
		Status:     domain.RateStatusPending,
	}
}

func (s *RateSchedulerTestSuite) TestStartupCycle_StoresLiveRate() {
	fetched := s.sampleFetched()
	s.mockSvc.On("FetchLiveRate", mock.Anything).Return(fetched, nil).Once()
	s.mockSvc.On("StoreFetchedRate", mock.Anything, *fetched).Return(s.sampleStored(), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.sched.Start(ctx)
	defer s.sched.Stop()

	s.Require().Eventually(func() bool {
		return s.sched.Status().FetchCount == 1
	}, 10*time.Second, 100*time.Millisecond)

	status := s.sched.Status()
	s.True(status.IsRunning)
	s.NotNil(status.LastFetchTime)
	s.mockSvc.AssertExpectations(s.T())
}

func (s *RateSchedulerTestSuite) TestStartupCycle_FallsBackWhenFetchFails() {
	fallback := s.sampleFetched()
	fallback.Source = domain.RateSourceCacheLastKnown
	stored := s.sampleStored()
	stored.Source = domain.RateSourceCacheLastKnown

	s.mockSvc.On("FetchLiveRate", mock.Anything).Return(nil, errors.New("all sources down")).Once()
	s.mockSvc.On("ResolveFallbackRate", mock.Anything).Return(fallback, nil).Once()
	s.mockSvc.On("StoreFetchedRate", mock.Anything, *fallback).Return(stored, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.sched.Start(ctx)
	defer s.sched.Stop()

	s.Require().Eventually(func() bool {
		return s.sched.Status().FetchCount == 1
	}, 10*time.Second, 100*time.Millisecond)

	s.mockSvc.AssertExpectations(s.T())
}

func (s *RateSchedulerTestSuite) TestStart_IsIdempotent() {
	s.mockSvc.On("FetchLiveRate", mock.Anything).Return(s.sampleFetched(), nil)
	s.mockSvc.On("StoreFetchedRate", mock.Anything, mock.Anything).Return(s.sampleStored(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.sched.Start(ctx)
	s.sched.Start(ctx)
	defer s.sched.Stop()

	s.True(s.sched.Status().IsRunning)

	// One startup kick, not one per Start call.
	s.Require().Eventually(func() bool {
		return s.sched.Status().FetchCount == 1
	}, 10*time.Second, 100*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	s.Equal(int64(1), s.sched.Status().FetchCount)
}

func (s *RateSchedulerTestSuite) TestStop_HaltsLoop() {
	s.mockSvc.On("FetchLiveRate", mock.Anything).Return(s.sampleFetched(), nil)
	s.mockSvc.On("StoreFetchedRate", mock.Anything, mock.Anything).Return(s.sampleStored(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.sched.Start(ctx)
	s.True(s.sched.Status().IsRunning)

	s.sched.Stop()
	s.False(s.sched.Status().IsRunning)

	// Stopping twice must not panic on the closed channel.
	s.NotPanics(func() { s.sched.Stop() })
}

func (s *RateSchedulerTestSuite) TestStatus_BeforeStart() {
	status := s.sched.Status()
	s.False(status.IsRunning)
	s.Nil(status.LastFetchTime)
	s.Equal(int64(0), status.FetchCount)
}

func TestRateSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(RateSchedulerTestSuite))
}
