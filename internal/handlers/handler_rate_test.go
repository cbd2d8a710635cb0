package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
	"github.com/palamattam/rubber_plant_app/internal/utils"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRateByID(ctx context.Context, rateID string) (*domain.Rate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) GetLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) GetPublishedLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) ListRateHistory(ctx context.Context, product string, limit int, nextToken string) ([]domain.RateHistoryEntry, string, error) {
	args := m.Called(ctx, product, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateHistoryEntry), args.String(1), args.Error(2)
}
func (m *MockRateService) ProposeRate(ctx context.Context, req dto.ProposeRateRequest, creatorUserID string) (*domain.Rate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest, requestingUserID string) (*domain.Rate, error) {
	args := m.Called(ctx, rateID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) VerifyRate(ctx context.Context, rateID string, verifierUserID string) (*domain.Rate, error) {
	args := m.Called(ctx, rateID, verifierUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) FetchLiveRate(ctx context.Context) (*domain.FetchedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedRate), args.Error(1)
}
func (m *MockRateService) StoreFetchedRate(ctx context.Context, fetched domain.FetchedRate) (*domain.Rate, error) {
	args := m.Called(ctx, fetched)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}
func (m *MockRateService) ResolveFallbackRate(ctx context.Context) (*domain.FetchedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedRate), args.Error(1)
}
func (m *MockRateService) PruneHistory(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Test Suite ---
type RateHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRateService *MockRateService
	jwtSecret       string
}

func (suite *RateHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "rpa-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("product", func(fl validator.FieldLevel) bool {
			return domain.IsKnownProduct(fl.Field().String())
		})
	}

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockRateService = new(MockRateService)

	v1 := suite.router.Group("/api/v1")
	registerRateRoutes(v1, suite.mockRateService)
}

func (suite *RateHandlerTestSuite) doRequest(method, url string, body []byte, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RateHandlerTestSuite) TestGetPublishedLatestRate_Success() {
	userID := uuid.NewString()
	now := time.Now().UTC()
	expected := &domain.Rate{
		RateID:        uuid.NewString(),
		Product:       domain.DefaultProduct,
		CompanyRate:   decimal.NewFromInt(19000),
		MarketRate:    decimal.NewFromInt(20150),
		Unit:          "INR/100kg",
		Source:        domain.RateSourceRubberBoard,
		Status:        domain.RateStatusPublished,
		EffectiveDate: now,
	}

	suite.mockRateService.On("GetPublishedLatestRate", mock.Anything, "").
		Return(expected, nil).Once()

	token := suite.generateTestToken(userID, domain.RoleStaff)
	w := suite.doRequest(http.MethodGet, "/api/v1/rates/published-latest", nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.RateID, resp.RateID)
	suite.Equal(string(domain.RateStatusPublished), resp.Status)
	suite.True(expected.MarketRate.Equal(resp.MarketRate))

	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetLatestRate_NotFound() {
	suite.mockRateService.On("GetLatestRate", mock.Anything, "").
		Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleStaff)
	w := suite.doRequest(http.MethodGet, "/api/v1/rates/latest", nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestProposeRate_StaffForbidden() {
	body, _ := json.Marshal(dto.ProposeRateRequest{
		CompanyRate: decimal.NewFromInt(19000),
		MarketRate:  decimal.NewFromInt(20150),
	})

	token := suite.generateTestToken(uuid.NewString(), domain.RoleStaff)
	w := suite.doRequest(http.MethodPost, "/api/v1/rates", body, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "ProposeRate")
}

func (suite *RateHandlerTestSuite) TestProposeRate_ManagerSuccess() {
	managerID := uuid.NewString()
	reqBody := dto.ProposeRateRequest{
		CompanyRate: decimal.NewFromInt(19000),
		MarketRate:  decimal.NewFromInt(20150),
		Product:     domain.DefaultProduct,
	}
	created := &domain.Rate{
		RateID:      uuid.NewString(),
		Product:     domain.DefaultProduct,
		CompanyRate: reqBody.CompanyRate,
		MarketRate:  reqBody.MarketRate,
		Source:      domain.RateSourceManual,
		Status:      domain.RateStatusPending,
	}

	suite.mockRateService.On("ProposeRate", mock.Anything, mock.MatchedBy(func(r dto.ProposeRateRequest) bool {
		return r.MarketRate.Equal(reqBody.MarketRate) && r.Product == domain.DefaultProduct
	}), managerID).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	token := suite.generateTestToken(managerID, domain.RoleManager)
	w := suite.doRequest(http.MethodPost, "/api/v1/rates", body, token)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.RateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.RateStatusPending), resp.Status)

	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestVerifyRate_PassesVerifierID() {
	adminID := uuid.NewString()
	rateID := uuid.NewString()
	now := time.Now().UTC()
	published := &domain.Rate{
		RateID:     rateID,
		Product:    domain.DefaultProduct,
		Status:     domain.RateStatusPublished,
		VerifiedBy: adminID,
		VerifiedAt: &now,
	}

	suite.mockRateService.On("VerifyRate", mock.Anything, rateID, adminID).
		Return(published, nil).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.doRequest(http.MethodPost, "/api/v1/rates/"+rateID+"/verify", nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(adminID, resp.VerifiedBy)

	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestMissingToken_Unauthorized() {
	w := suite.doRequest(http.MethodGet, "/api/v1/rates/latest", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "GetLatestRate")
}

// --- Run Test Suite ---
func TestRateHandler(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}
