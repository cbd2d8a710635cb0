package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
	"github.com/palamattam/rubber_plant_app/internal/scheduler"
	"github.com/palamattam/rubber_plant_app/internal/utils"
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
type SchedulerHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockRateFetchSvc
	sched     *scheduler.RateScheduler
	jwtSecret string
}

func (suite *SchedulerHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "rpa-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *SchedulerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockSvc = new(MockRateFetchSvc)
	suite.sched = scheduler.NewRateScheduler(suite.mockSvc, scheduler.Config{
		TimeZone:           "Asia/Kolkata",
		DailyFetchHour:     9,
		BusinessHoursStart: 9,
		BusinessHoursEnd:   17,
	}, slog.New(slog.DiscardHandler))

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	v1 := suite.router.Group("/api/v1")
	registerSchedulerRoutes(v1, suite.sched)
}

func (suite *SchedulerHandlerTestSuite) doRequest(method, url, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SchedulerHandlerTestSuite) TestGetStatus_Success() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	w := suite.doRequest(http.MethodGet, "/api/v1/scheduler/status", token)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SchedulerStatusResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.IsRunning)
}

func (suite *SchedulerHandlerTestSuite) TestTriggerFetch_RespondsWhileCycleRuns() {
	release := make(chan struct{})
	done := make(chan struct{})

	fetched := &domain.FetchedRate{
		Product: domain.DefaultProduct,
		Rate:    decimal.NewFromInt(12345),
		Source:  domain.RateSourceRubberBoard,
	}
	stored := &domain.Rate{
		RateID:  "rate-1",
		Product: domain.DefaultProduct,
		Status:  domain.RateStatusPending,
	}

	suite.mockSvc.On("FetchLiveRate", mock.Anything).Run(func(mock.Arguments) {
		<-release
	}).Return(fetched, nil).Once()
	suite.mockSvc.On("StoreFetchedRate", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(done)
	}).Return(stored, nil).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	w := suite.doRequest(http.MethodPost, "/api/v1/scheduler/trigger", token)

	// The response must come back while the scrape is still blocked.
	suite.Equal(http.StatusAccepted, w.Code)

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		suite.FailNow("cycle never stored the fetched rate")
	}
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *SchedulerHandlerTestSuite) TestTriggerFetch_StaffForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleStaff)
	w := suite.doRequest(http.MethodPost, "/api/v1/scheduler/trigger", token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "FetchLiveRate")
}

func (suite *SchedulerHandlerTestSuite) TestSchedulerDisabled_Returns503() {
	router := gin.New()
	router.Use(middleware.AuthMiddleware(suite.jwtSecret))
	v1 := router.Group("/api/v1")
	registerSchedulerRoutes(v1, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/scheduler/status", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), domain.RoleAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

// --- Run Test Suite ---
func TestSchedulerHandler(t *testing.T) {
	suite.Run(t, new(SchedulerHandlerTestSuite))
}
