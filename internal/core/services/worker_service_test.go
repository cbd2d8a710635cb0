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

// --- Mock WorkerRepository ---
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkers(ctx context.Context, includeInactive bool) ([]domain.Worker, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendance), args.Error(1)
}

func (m *MockWorkerRepository) ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendance), args.Error(1)
}

func (m *MockWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error) {
	args := m.Called(ctx, attendance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

// --- Test Suite ---
type WorkerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockWorkerRepository
	service  portssvc.WorkerSvcFacade
}

func (suite *WorkerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWorkerRepository)
	suite.service = services.NewWorkerService(suite.mockRepo)
}

func activeWorker(wage int64) *domain.Worker {
	return &domain.Worker{
		WorkerID:  uuid.NewString(),
		Name:      "Raju",
		Category:  domain.WorkerCategoryTapper,
		DailyWage: decimal.NewFromInt(wage),
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *WorkerServiceTestSuite) TestCreateWorker_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateWorkerRequest{
		Name:      "Raju",
		Category:  string(domain.WorkerCategoryTapper),
		DailyWage: decimal.NewFromInt(500),
	}

	suite.mockRepo.On("SaveWorker", ctx, mock.MatchedBy(func(w domain.Worker) bool {
		return w.Name == req.Name && w.IsActive && w.CreatedBy == creatorUserID
	})).Return(nil).Once()

	worker, err := suite.service.CreateWorker(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.True(worker.IsActive)
	suite.False(worker.JoinedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkerServiceTestSuite) TestCreateWorker_UnknownCategory() {
	ctx := context.Background()
	req := dto.CreateWorkerRequest{
		Name:      "Raju",
		Category:  "pilot",
		DailyWage: decimal.NewFromInt(500),
	}

	worker, err := suite.service.CreateWorker(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(worker)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveWorker", mock.Anything, mock.Anything)
}

func (suite *WorkerServiceTestSuite) TestMarkAttendance_NormalizesDay() {
	ctx := context.Background()
	worker := activeWorker(500)
	// Mid-afternoon timestamp should land on the day's midnight.
	at := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)
	req := dto.MarkAttendanceRequest{
		WorkerID: worker.WorkerID,
		Date:     &at,
		Present:  true,
	}

	suite.mockRepo.On("FindWorkerByID", ctx, worker.WorkerID).Return(worker, nil).Once()
	suite.mockRepo.On("UpsertAttendance", ctx, mock.MatchedBy(func(a domain.Attendance) bool {
		want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		return a.Date.Equal(want) && a.Present && a.Shift == domain.ShiftFull
	})).Return(&domain.Attendance{WorkerID: worker.WorkerID}, nil).Once()

	_, err := suite.service.MarkAttendance(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkerServiceTestSuite) TestMarkAttendance_AbsentWithOvertime() {
	ctx := context.Background()
	worker := activeWorker(500)
	overtime := decimal.NewFromInt(2)
	req := dto.MarkAttendanceRequest{
		WorkerID:      worker.WorkerID,
		Present:       false,
		OvertimeHours: &overtime,
	}

	suite.mockRepo.On("FindWorkerByID", ctx, worker.WorkerID).Return(worker, nil).Once()

	_, err := suite.service.MarkAttendance(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertAttendance", mock.Anything, mock.Anything)
}

func (suite *WorkerServiceTestSuite) TestMarkAttendance_InactiveWorker() {
	ctx := context.Background()
	worker := activeWorker(500)
	worker.IsActive = false
	req := dto.MarkAttendanceRequest{WorkerID: worker.WorkerID, Present: true}

	suite.mockRepo.On("FindWorkerByID", ctx, worker.WorkerID).Return(worker, nil).Once()

	_, err := suite.service.MarkAttendance(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestWorkerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerServiceTestSuite))
}
