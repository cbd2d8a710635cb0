package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
)

// Config holds the scheduler's timing knobs.
type Config struct {
	TimeZone             string
	DailyFetchHour       int
	BusinessHoursStart   int
	BusinessHoursEnd     int
	HistoryRetentionDays int
}

// RateScheduler drives the automated rate pipeline. It wakes every minute,
// runs the daily fetch at the configured hour and refreshes hourly during
// business hours. Every stored value goes in as pending; publication stays a
// human decision.
type RateScheduler struct {
	rateSvc portssvc.RateFetchSvc
	cfg     Config
	loc     *time.Location
	logger  *slog.Logger

	mu            sync.Mutex
	isRunning     bool
	inFlight      bool
	lastFetchTime *time.Time
	fetchCount    int64
	lastDailyRun  string // YYYY-MM-DD in plant local time
	lastHourlyRun string // YYYY-MM-DD-HH in plant local time
	stopCh        chan struct{}
}

// Status is a snapshot of the scheduler's introspection state.
type Status struct {
	IsRunning     bool
	LastFetchTime *time.Time
	FetchCount    int64
}

// NewRateScheduler builds a scheduler in the plant's local timezone. An
// unknown zone falls back to UTC rather than failing startup.
func NewRateScheduler(rateSvc portssvc.RateFetchSvc, cfg Config, logger *slog.Logger) *RateScheduler {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logger.Warn("unknown scheduler timezone, using UTC", slog.String("timezone", cfg.TimeZone))
		loc = time.UTC
	}
	return &RateScheduler{
		rateSvc: rateSvc,
		cfg:     cfg,
		loc:     loc,
		logger:  logger,
	}
}

// Start launches the check loop. Calling Start on a running scheduler is a
// no-op.
func (s *RateScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.logger.Info("rate scheduler started",
		slog.Int("dailyFetchHour", s.cfg.DailyFetchHour),
		slog.Int("businessHoursStart", s.cfg.BusinessHoursStart),
		slog.Int("businessHoursEnd", s.cfg.BusinessHoursEnd),
		slog.String("timezone", s.loc.String()))

	go s.run(ctx, stopCh)
}

// Stop halts the check loop. In-flight cycles finish on their own.
func (s *RateScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	s.isRunning = false
	close(s.stopCh)
	s.logger.Info("rate scheduler stopped")
}

// TriggerFetch runs one fetch cycle immediately, outside the schedule.
// It blocks until the cycle completes.
func (s *RateScheduler) TriggerFetch(ctx context.Context) {
	s.runCycle(ctx, "manual")
}

// Status reports whether the loop is active and when it last fetched.
func (s *RateScheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		IsRunning:     s.isRunning,
		LastFetchTime: s.lastFetchTime,
		FetchCount:    s.fetchCount,
	}
}

func (s *RateScheduler) run(ctx context.Context, stopCh chan struct{}) {
	// Prime the store shortly after startup so a fresh deployment has a
	// rate without waiting for the next scheduled slot.
	startup := time.NewTimer(5 * time.Second)
	defer startup.Stop()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return
		case <-stopCh:
			return
		case <-startup.C:
			s.runCycle(ctx, "startup")
		case <-ticker.C:
			s.checkSchedule(ctx)
		}
	}
}

// checkSchedule decides whether the current minute is one of the scheduled
// slots. Bookkeeping keys are per local day and per local hour so a slot
// fires at most once even though the loop wakes every minute.
func (s *RateScheduler) checkSchedule(ctx context.Context) {
	now := time.Now().In(s.loc)
	dayKey := now.Format("2006-01-02")
	hourKey := now.Format("2006-01-02-15")

	s.mu.Lock()
	runDaily := now.Hour() == s.cfg.DailyFetchHour && s.lastDailyRun != dayKey
	runHourly := !runDaily &&
		now.Hour() >= s.cfg.BusinessHoursStart && now.Hour() < s.cfg.BusinessHoursEnd &&
		s.lastHourlyRun != hourKey
	if runDaily {
		s.lastDailyRun = dayKey
		s.lastHourlyRun = hourKey
	}
	if runHourly {
		s.lastHourlyRun = hourKey
	}
	s.mu.Unlock()

	if runDaily {
		s.runCycle(ctx, "daily")
		s.pruneHistory(ctx)
	} else if runHourly {
		s.runCycle(ctx, "hourly")
	}
}

// runCycle performs one fetch-and-store pass. A cycle already in flight
// causes the new one to be skipped instead of piling up.
func (s *RateScheduler) runCycle(ctx context.Context, trigger string) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.logger.Warn("skipping rate cycle, previous still in flight", slog.String("trigger", trigger))
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()

		if r := recover(); r != nil {
			s.logger.Error("rate cycle panicked", slog.Any("panic", r), slog.String("trigger", trigger))
			s.storeFallback(ctx, trigger)
		}
	}()

	s.logger.Info("rate cycle starting", slog.String("trigger", trigger))

	fetched, err := s.rateSvc.FetchLiveRate(ctx)
	if err != nil {
		s.logger.Warn("live fetch failed, resolving fallback", slog.String("error", err.Error()))
		s.storeFallback(ctx, trigger)
		return
	}

	stored, err := s.rateSvc.StoreFetchedRate(ctx, *fetched)
	if err != nil {
		s.logger.Error("failed to store fetched rate", slog.String("error", err.Error()))
		return
	}

	s.recordFetch()
	s.logger.Info("rate cycle stored live rate",
		slog.String("rateID", stored.RateID),
		slog.String("rate", stored.MarketRate.String()),
		slog.String("source", string(stored.Source)))
}

// storeFallback writes the last known value so the day is never left without
// a rate record. Fallback failures are logged and swallowed; the scheduler
// must outlive any single bad day.
func (s *RateScheduler) storeFallback(ctx context.Context, trigger string) {
	fallback, err := s.rateSvc.ResolveFallbackRate(ctx)
	if err != nil {
		s.logger.Error("fallback resolution failed", slog.String("error", err.Error()), slog.String("trigger", trigger))
		return
	}
	stored, err := s.rateSvc.StoreFetchedRate(ctx, *fallback)
	if err != nil {
		s.logger.Error("failed to store fallback rate", slog.String("error", err.Error()))
		return
	}
	s.recordFetch()
	s.logger.Info("rate cycle stored fallback rate",
		slog.String("rateID", stored.RateID),
		slog.String("source", string(stored.Source)))
}

func (s *RateScheduler) pruneHistory(ctx context.Context) {
	if s.cfg.HistoryRetentionDays <= 0 {
		return
	}
	cutoff := time.Now().In(s.loc).AddDate(0, 0, -s.cfg.HistoryRetentionDays)
	removed, err := s.rateSvc.PruneHistory(ctx, cutoff)
	if err != nil {
		s.logger.Error("history pruning failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		s.logger.Info("pruned rate history", slog.Int64("removed", removed))
	}
}

func (s *RateScheduler) recordFetch() {
	now := time.Now().UTC()
	s.mu.Lock()
	s.lastFetchTime = &now
	s.fetchCount++
	s.mu.Unlock()
}
