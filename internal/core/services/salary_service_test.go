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

// --- Mock SalaryRepository ---
type MockSalaryRepository struct {
	mock.Mock
}

func (m *MockSalaryRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	args := m.Called(ctx, salaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockSalaryRepository) FindSalaryByWorkerPeriod(ctx context.Context, workerID, period string) (*domain.Salary, error) {
	args := m.Called(ctx, workerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockSalaryRepository) ListSalariesByPeriod(ctx context.Context, period string) ([]domain.Salary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Salary), args.Error(1)
}

func (m *MockSalaryRepository) SaveSalary(ctx context.Context, salary domain.Salary) error {
	args := m.Called(ctx, salary)
	return args.Error(0)
}

func (m *MockSalaryRepository) UpdateSalary(ctx context.Context, salary domain.Salary) error {
	args := m.Called(ctx, salary)
	return args.Error(0)
}

func (m *MockSalaryRepository) DeleteDraftSalariesForPeriod(ctx context.Context, period string) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type SalaryServiceTestSuite struct {
	suite.Suite
	mockSalaryRepo *MockSalaryRepository
	mockWorkerRepo *MockWorkerRepository
	service        portssvc.SalarySvcFacade
}

func (suite *SalaryServiceTestSuite) SetupTest() {
	suite.mockSalaryRepo = new(MockSalaryRepository)
	suite.mockWorkerRepo = new(MockWorkerRepository)
	suite.service = services.NewSalaryService(suite.mockSalaryRepo, suite.mockWorkerRepo)
}

// attendanceRows builds n present days (with optional overtime on the first)
// for a worker within the given month.
func attendanceRows(workerID string, year int, month time.Month, days int, overtimeFirstDay decimal.Decimal) []domain.Attendance {
	rows := make([]domain.Attendance, 0, days)
	for d := 1; d <= days; d++ {
		a := domain.Attendance{
			AttendanceID:  uuid.NewString(),
			WorkerID:      workerID,
			Date:          time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
			Present:       true,
			Shift:         domain.ShiftFull,
			OvertimeHours: decimal.Zero,
		}
		if d == 1 {
			a.OvertimeHours = overtimeFirstDay
		}
		rows = append(rows, a)
	}
	return rows
}

// --- Test Cases ---

func (suite *SalaryServiceTestSuite) TestGenerateSalaries_WageFormula() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	worker := activeWorker(500)
	period := "2026-07"
	periodStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// 26 days at 500 plus 10h overtime at (500/8)*1.5 = 13000 + 937.50.
	attendance := attendanceRows(worker.WorkerID, 2026, time.July, 26, decimal.NewFromInt(10))

	suite.mockWorkerRepo.On("ListWorkers", ctx, false).Return([]domain.Worker{*worker}, nil).Once()
	suite.mockWorkerRepo.On("ListAttendanceBetween", ctx, periodStart, periodEnd).Return(attendance, nil).Once()
	suite.mockSalaryRepo.On("ListSalariesByPeriod", ctx, period).Return([]domain.Salary{}, nil).Once()
	suite.mockSalaryRepo.On("DeleteDraftSalariesForPeriod", ctx, period).Return(int64(0), nil).Once()
	suite.mockSalaryRepo.On("SaveSalary", ctx, mock.MatchedBy(func(s domain.Salary) bool {
		return s.WorkerID == worker.WorkerID &&
			s.DaysPresent == 26 &&
			s.Status == domain.SalaryStatusDraft &&
			s.GrossPay.Equal(decimal.NewFromFloat(13937.50)) &&
			s.NetPay.Equal(s.GrossPay)
	})).Return(nil).Once()

	generated, err := suite.service.GenerateSalaries(ctx, period, requesterID)

	suite.Require().NoError(err)
	suite.Len(generated, 1)
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *SalaryServiceTestSuite) TestGenerateSalaries_SkipsApprovedWorkers() {
	ctx := context.Background()
	worker := activeWorker(500)
	period := "2026-07"
	approved := domain.Salary{
		SalaryID: uuid.NewString(),
		WorkerID: worker.WorkerID,
		Period:   period,
		Status:   domain.SalaryStatusApproved,
	}

	suite.mockWorkerRepo.On("ListWorkers", ctx, false).Return([]domain.Worker{*worker}, nil).Once()
	suite.mockWorkerRepo.On("ListAttendanceBetween", ctx, mock.Anything, mock.Anything).Return([]domain.Attendance{}, nil).Once()
	suite.mockSalaryRepo.On("ListSalariesByPeriod", ctx, period).Return([]domain.Salary{approved}, nil).Once()
	suite.mockSalaryRepo.On("DeleteDraftSalariesForPeriod", ctx, period).Return(int64(0), nil).Once()

	generated, err := suite.service.GenerateSalaries(ctx, period, uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(generated)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "SaveSalary", mock.Anything, mock.Anything)
}

func (suite *SalaryServiceTestSuite) TestGenerateSalaries_BadPeriod() {
	ctx := context.Background()

	_, err := suite.service.GenerateSalaries(ctx, "July 2026", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SalaryServiceTestSuite) TestSetDeductions_RecomputesNetPay() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	salary := &domain.Salary{
		SalaryID:   "salary-1",
		GrossPay:   decimal.NewFromInt(13000),
		Deductions: decimal.Zero,
		NetPay:     decimal.NewFromInt(13000),
		Status:     domain.SalaryStatusDraft,
	}
	req := dto.SetDeductionsRequest{Deductions: decimal.NewFromInt(2000)}

	suite.mockSalaryRepo.On("FindSalaryByID", ctx, "salary-1").Return(salary, nil).Once()
	suite.mockSalaryRepo.On("UpdateSalary", ctx, mock.MatchedBy(func(s domain.Salary) bool {
		return s.NetPay.Equal(decimal.NewFromInt(11000))
	})).Return(nil).Once()

	updated, err := suite.service.SetDeductions(ctx, "salary-1", req, requesterID)

	suite.Require().NoError(err)
	suite.True(updated.NetPay.Equal(decimal.NewFromInt(11000)))
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *SalaryServiceTestSuite) TestSetDeductions_RejectsNonDraft() {
	ctx := context.Background()
	salary := &domain.Salary{
		SalaryID: "salary-1",
		GrossPay: decimal.NewFromInt(13000),
		Status:   domain.SalaryStatusPaid,
	}

	suite.mockSalaryRepo.On("FindSalaryByID", ctx, "salary-1").Return(salary, nil).Once()

	_, err := suite.service.SetDeductions(ctx, "salary-1", dto.SetDeductionsRequest{Deductions: decimal.NewFromInt(100)}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "UpdateSalary", mock.Anything, mock.Anything)
}

func (suite *SalaryServiceTestSuite) TestApproveSalary_FromDraft() {
	ctx := context.Background()
	approverID := uuid.NewString()
	salary := &domain.Salary{SalaryID: "salary-1", Status: domain.SalaryStatusDraft}

	suite.mockSalaryRepo.On("FindSalaryByID", ctx, "salary-1").Return(salary, nil).Once()
	suite.mockSalaryRepo.On("UpdateSalary", ctx, mock.MatchedBy(func(s domain.Salary) bool {
		return s.Status == domain.SalaryStatusApproved && s.ApprovedBy == approverID && s.ApprovedAt != nil
	})).Return(nil).Once()

	updated, err := suite.service.ApproveSalary(ctx, "salary-1", approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.SalaryStatusApproved, updated.Status)
}

func (suite *SalaryServiceTestSuite) TestMarkSalaryPaid_SkippingApprovalFails() {
	ctx := context.Background()
	salary := &domain.Salary{SalaryID: "salary-1", Status: domain.SalaryStatusDraft}

	suite.mockSalaryRepo.On("FindSalaryByID", ctx, "salary-1").Return(salary, nil).Once()

	_, err := suite.service.MarkSalaryPaid(ctx, "salary-1", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "UpdateSalary", mock.Anything, mock.Anything)
}

func TestSalaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalaryServiceTestSuite))
}
