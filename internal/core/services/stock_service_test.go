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

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindStockItemByID(ctx context.Context, itemID string) (*domain.StockItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ListStockItems(ctx context.Context, category *string) ([]domain.StockItem, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ListLowStockItems(ctx context.Context) ([]domain.StockItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ListMovements(ctx context.Context, itemID string, limit int, before *time.Time) ([]domain.StockMovement, error) {
	args := m.Called(ctx, itemID, limit, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateStockItem(ctx context.Context, item domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) AdjustStock(ctx context.Context, itemID string, delta domain.StockMovement) (*domain.StockItem, *domain.StockMovement, error) {
	args := m.Called(ctx, itemID, delta)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.StockItem), args.Get(1).(*domain.StockMovement), args.Error(2)
}

// --- Test Suite ---
type StockServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStockRepository
	service  portssvc.StockSvcFacade
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStockRepository)
	suite.service = services.NewStockService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *StockServiceTestSuite) TestCreateStockItem_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateStockItemRequest{
		Name:         "Formic acid",
		Category:     "chemicals",
		Unit:         "litre",
		Quantity:     decimal.NewFromInt(40),
		ReorderLevel: decimal.NewFromInt(10),
	}

	suite.mockRepo.On("SaveStockItem", ctx, mock.MatchedBy(func(i domain.StockItem) bool {
		return i.Name == req.Name && i.CreatedBy == creatorUserID
	})).Return(nil).Once()

	item, err := suite.service.CreateStockItem(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.False(item.IsLow())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestCreateStockItem_NegativeQuantity() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		Name:     "Formic acid",
		Unit:     "litre",
		Quantity: decimal.NewFromInt(-5),
	}

	item, err := suite.service.CreateStockItem(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(item)
}

func (suite *StockServiceTestSuite) TestAdjustStock_BuildsMovement() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	req := dto.AdjustStockRequest{Delta: decimal.NewFromInt(-3), Reason: "tapping round"}
	updated := &domain.StockItem{ItemID: "item-1", Quantity: decimal.NewFromInt(37)}
	stored := &domain.StockMovement{MovementID: uuid.NewString(), ItemID: "item-1"}

	suite.mockRepo.On("AdjustStock", ctx, "item-1", mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.ItemID == "item-1" &&
			m.Delta.Equal(req.Delta) &&
			m.Reason == req.Reason &&
			m.RecordedBy == requesterID &&
			m.MovementID != ""
	})).Return(updated, stored, nil).Once()

	item, movement, err := suite.service.AdjustStock(ctx, "item-1", req, requesterID)

	suite.Require().NoError(err)
	suite.Equal(updated, item)
	suite.Equal(stored, movement)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestAdjustStock_ZeroDelta() {
	ctx := context.Background()

	_, _, err := suite.service.AdjustStock(ctx, "item-1", dto.AdjustStockRequest{Delta: decimal.Zero}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestUpdateStockItem_CannotTouchQuantity() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	existing := &domain.StockItem{
		ItemID:   "item-1",
		Name:     "Formic acid",
		Quantity: decimal.NewFromInt(40),
	}
	newName := "Formic acid 85%"

	suite.mockRepo.On("FindStockItemByID", ctx, "item-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateStockItem", ctx, mock.MatchedBy(func(i domain.StockItem) bool {
		return i.Name == newName && i.Quantity.Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()

	item, err := suite.service.UpdateStockItem(ctx, "item-1", dto.UpdateStockItemRequest{Name: &newName}, requesterID)

	suite.Require().NoError(err)
	suite.True(item.Quantity.Equal(decimal.NewFromInt(40)))
}

func (suite *StockServiceTestSuite) TestListMovements_PagesWithToken() {
	ctx := context.Background()
	now := time.Now().UTC()
	page := []domain.StockMovement{
		{MovementID: "m-1", ItemID: "item-1", RecordedAt: now},
		{MovementID: "m-2", ItemID: "item-1", RecordedAt: now.Add(-time.Hour)},
	}

	suite.mockRepo.On("ListMovements", ctx, "item-1", 2, (*time.Time)(nil)).Return(page, nil).Once()

	movements, token, err := suite.service.ListMovements(ctx, "item-1", 2, "")

	suite.Require().NoError(err)
	suite.Len(movements, 2)
	suite.NotEmpty(token, "a full page should carry a continuation token")
}

func (suite *StockServiceTestSuite) TestListMovements_BadToken() {
	ctx := context.Background()

	_, _, err := suite.service.ListMovements(ctx, "item-1", 10, "not-a-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
