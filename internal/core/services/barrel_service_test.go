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

// --- Mock BarrelRepository ---
type MockBarrelRepository struct {
	mock.Mock
}

func (m *MockBarrelRepository) FindBarrelByID(ctx context.Context, barrelID string) (*domain.Barrel, error) {
	args := m.Called(ctx, barrelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barrel), args.Error(1)
}

func (m *MockBarrelRepository) FindBarrelByCode(ctx context.Context, code string) (*domain.Barrel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barrel), args.Error(1)
}

func (m *MockBarrelRepository) ListBarrels(ctx context.Context, status *domain.BarrelStatus) ([]domain.Barrel, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Barrel), args.Error(1)
}

func (m *MockBarrelRepository) ListFEFO(ctx context.Context, asOf time.Time, limit int) ([]domain.Barrel, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Barrel), args.Error(1)
}

func (m *MockBarrelRepository) SaveBarrel(ctx context.Context, barrel domain.Barrel) error {
	args := m.Called(ctx, barrel)
	return args.Error(0)
}

func (m *MockBarrelRepository) UpdateBarrel(ctx context.Context, barrel domain.Barrel) error {
	args := m.Called(ctx, barrel)
	return args.Error(0)
}

// --- Mock RateReaderSvc ---
type MockRateReaderSvc struct {
	mock.Mock
}

func (m *MockRateReaderSvc) GetRateByID(ctx context.Context, rateID string) (*domain.Rate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateReaderSvc) GetLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateReaderSvc) GetPublishedLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateReaderSvc) ListRateHistory(ctx context.Context, product string, limit int, nextToken string) ([]domain.RateHistoryEntry, string, error) {
	args := m.Called(ctx, product, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateHistoryEntry), args.String(1), args.Error(2)
}

// --- Test Suite ---
type BarrelServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockBarrelRepository
	mockRateReader *MockRateReaderSvc
	service        portssvc.BarrelSvcFacade
}

func (suite *BarrelServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBarrelRepository)
	suite.mockRateReader = new(MockRateReaderSvc)
	suite.service = services.NewBarrelService(suite.mockRepo, suite.mockRateReader)
}

func (suite *BarrelServiceTestSuite) validCreateRequest() dto.CreateBarrelRequest {
	return dto.CreateBarrelRequest{
		Code:           "B-1042",
		CapacityLitres: decimal.NewFromInt(200),
		VolumeLitres:   decimal.NewFromInt(180),
		DRCPercent:     decimal.NewFromInt(60),
		ExpiryDate:     time.Now().AddDate(0, 1, 0),
		Location:       "shed-2",
	}
}

// --- Test Cases ---

func (suite *BarrelServiceTestSuite) TestCreateBarrel_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.validCreateRequest()

	suite.mockRepo.On("FindBarrelByCode", ctx, req.Code).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBarrel", ctx, mock.MatchedBy(func(b domain.Barrel) bool {
		return b.Code == req.Code &&
			b.Status == domain.BarrelStatusInStorage &&
			b.CreatedBy == creatorUserID
	})).Return(nil).Once()

	barrel, err := suite.service.CreateBarrel(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.BarrelStatusInStorage, barrel.Status)
	// 180L at 60% drc is 108kg dry.
	suite.True(barrel.DryRubberKg().Equal(decimal.NewFromInt(108)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BarrelServiceTestSuite) TestCreateBarrel_DuplicateCode() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	existing := &domain.Barrel{BarrelID: uuid.NewString(), Code: req.Code}

	suite.mockRepo.On("FindBarrelByCode", ctx, req.Code).Return(existing, nil).Once()

	barrel, err := suite.service.CreateBarrel(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(barrel)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBarrel", mock.Anything, mock.Anything)
}

func (suite *BarrelServiceTestSuite) TestCreateBarrel_VolumeExceedsCapacity() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.VolumeLitres = decimal.NewFromInt(250)

	barrel, err := suite.service.CreateBarrel(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(barrel)
}

func (suite *BarrelServiceTestSuite) TestTransitionBarrel_ValidFlow() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	barrel := &domain.Barrel{
		BarrelID: "barrel-1",
		Status:   domain.BarrelStatusInStorage,
	}

	suite.mockRepo.On("FindBarrelByID", ctx, "barrel-1").Return(barrel, nil).Once()
	suite.mockRepo.On("UpdateBarrel", ctx, mock.MatchedBy(func(b domain.Barrel) bool {
		return b.Status == domain.BarrelStatusInUse && b.LastUpdatedBy == requesterID
	})).Return(nil).Once()

	updated, err := suite.service.TransitionBarrel(ctx, "barrel-1", domain.BarrelStatusInUse, requesterID)

	suite.Require().NoError(err)
	suite.Equal(domain.BarrelStatusInUse, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BarrelServiceTestSuite) TestTransitionBarrel_IllegalJump() {
	ctx := context.Background()
	barrel := &domain.Barrel{
		BarrelID: "barrel-1",
		Status:   domain.BarrelStatusDispatched,
	}

	suite.mockRepo.On("FindBarrelByID", ctx, "barrel-1").Return(barrel, nil).Once()

	updated, err := suite.service.TransitionBarrel(ctx, "barrel-1", domain.BarrelStatusInUse, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBarrel", mock.Anything, mock.Anything)
}

func (suite *BarrelServiceTestSuite) TestValueBarrel_UsesPublishedRate() {
	ctx := context.Background()
	barrel := &domain.Barrel{
		BarrelID:     "barrel-1",
		VolumeLitres: decimal.NewFromInt(180),
		DRCPercent:   decimal.NewFromInt(60),
	}
	rate := &domain.Rate{
		RateID:     "rate-1",
		Product:    domain.DefaultProduct,
		MarketRate: decimal.NewFromInt(20000),
		Status:     domain.RateStatusPublished,
	}

	suite.mockRepo.On("FindBarrelByID", ctx, "barrel-1").Return(barrel, nil).Once()
	suite.mockRateReader.On("GetPublishedLatestRate", ctx, domain.DefaultProduct).Return(rate, nil).Once()

	gotBarrel, gotRate, err := suite.service.ValueBarrel(ctx, "barrel-1")

	suite.Require().NoError(err)
	// 108kg dry at 20000 per 100kg is 21600.
	suite.True(gotBarrel.ValueAt(gotRate.MarketRate).Equal(decimal.NewFromInt(21600)))
}

func (suite *BarrelServiceTestSuite) TestValueBarrel_NoPublishedRate() {
	ctx := context.Background()
	barrel := &domain.Barrel{BarrelID: "barrel-1"}

	suite.mockRepo.On("FindBarrelByID", ctx, "barrel-1").Return(barrel, nil).Once()
	suite.mockRateReader.On("GetPublishedLatestRate", ctx, domain.DefaultProduct).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ValueBarrel(ctx, "barrel-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBarrelServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BarrelServiceTestSuite))
}
