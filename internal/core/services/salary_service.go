package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

const periodLayout = "2006-01"

type salaryService struct {
	salaryRepo portsrepo.SalaryRepositoryFacade
	workerRepo portsrepo.WorkerRepositoryFacade
}

// NewSalaryService creates the monthly salary service.
func NewSalaryService(salaryRepo portsrepo.SalaryRepositoryFacade, workerRepo portsrepo.WorkerRepositoryFacade) portssvc.SalarySvcFacade {
	return &salaryService{
		salaryRepo: salaryRepo,
		workerRepo: workerRepo,
	}
}

var _ portssvc.SalarySvcFacade = (*salaryService)(nil)

// GenerateSalaries computes a draft salary for every active worker from the
// period's attendance. Regeneration replaces existing drafts; approved and
// paid records for the period are left alone and their workers skipped.
func (s *salaryService) GenerateSalaries(ctx context.Context, period string, requestingUserID string) ([]domain.Salary, error) {
	periodStart, err := time.Parse(periodLayout, period)
	if err != nil {
		return nil, fmt.Errorf("%w: period must be YYYY-MM", apperrors.ErrValidation)
	}
	periodEnd := periodStart.AddDate(0, 1, 0)

	workers, err := s.workerRepo.ListWorkers(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers for salary generation: %w", err)
	}

	attendance, err := s.workerRepo.ListAttendanceBetween(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for salary generation: %w", err)
	}

	type tally struct {
		daysPresent   int
		overtimeHours decimal.Decimal
	}
	tallies := make(map[string]*tally, len(workers))
	for _, w := range workers {
		tallies[w.WorkerID] = &tally{overtimeHours: decimal.Zero}
	}
	for _, a := range attendance {
		t, ok := tallies[a.WorkerID]
		if !ok || !a.Present {
			continue
		}
		t.daysPresent++
		t.overtimeHours = t.overtimeHours.Add(a.OvertimeHours)
	}

	// Locked records survive regeneration.
	existing, err := s.salaryRepo.ListSalariesByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing salaries: %w", err)
	}
	locked := make(map[string]bool)
	for _, sal := range existing {
		if sal.Status != domain.SalaryStatusDraft {
			locked[sal.WorkerID] = true
		}
	}

	if _, err := s.salaryRepo.DeleteDraftSalariesForPeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to clear draft salaries: %w", err)
	}

	now := time.Now()
	generated := []domain.Salary{}
	for _, w := range workers {
		if locked[w.WorkerID] {
			continue
		}
		t := tallies[w.WorkerID]
		gross := domain.ComputeGrossPay(w.DailyWage, t.daysPresent, t.overtimeHours)

		salary := domain.Salary{
			SalaryID:      uuid.NewString(),
			WorkerID:      w.WorkerID,
			Period:        period,
			DaysPresent:   t.daysPresent,
			OvertimeHours: t.overtimeHours,
			GrossPay:      gross,
			Deductions:    decimal.Zero,
			NetPay:        gross,
			Status:        domain.SalaryStatusDraft,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
		if err := s.salaryRepo.SaveSalary(ctx, salary); err != nil {
			return nil, fmt.Errorf("failed to save salary for worker %s: %w", w.WorkerID, err)
		}
		generated = append(generated, salary)
	}

	return generated, nil
}

func (s *salaryService) GetSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	salary, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary by ID in service: %w", err)
	}
	return salary, nil
}

func (s *salaryService) ListSalariesByPeriod(ctx context.Context, period string) ([]domain.Salary, error) {
	if _, err := time.Parse(periodLayout, period); err != nil {
		return nil, fmt.Errorf("%w: period must be YYYY-MM", apperrors.ErrValidation)
	}
	salaries, err := s.salaryRepo.ListSalariesByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries in service: %w", err)
	}
	if salaries == nil {
		return []domain.Salary{}, nil
	}
	return salaries, nil
}

// SetDeductions adjusts a draft's deductions and recomputes net pay.
// Approved and paid records are immutable.
func (s *salaryService) SetDeductions(ctx context.Context, salaryID string, req dto.SetDeductionsRequest, requestingUserID string) (*domain.Salary, error) {
	salary, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find salary for deductions: %w", err)
	}
	if salary.Status != domain.SalaryStatusDraft {
		return nil, fmt.Errorf("%w: only draft salaries can be adjusted", apperrors.ErrValidation)
	}
	if req.Deductions.IsNegative() {
		return nil, fmt.Errorf("%w: deductions cannot be negative", apperrors.ErrValidation)
	}
	if req.Deductions.GreaterThan(salary.GrossPay) {
		return nil, fmt.Errorf("%w: deductions cannot exceed gross pay", apperrors.ErrValidation)
	}

	salary.Deductions = req.Deductions
	salary.NetPay = salary.GrossPay.Sub(req.Deductions)
	salary.LastUpdatedAt = time.Now()
	salary.LastUpdatedBy = requestingUserID

	if err := s.salaryRepo.UpdateSalary(ctx, *salary); err != nil {
		return nil, fmt.Errorf("failed to set deductions in service: %w", err)
	}
	return salary, nil
}

// ApproveSalary moves a draft to approved.
func (s *salaryService) ApproveSalary(ctx context.Context, salaryID string, approverUserID string) (*domain.Salary, error) {
	return s.transition(ctx, salaryID, domain.SalaryStatusApproved, approverUserID)
}

// MarkSalaryPaid moves an approved salary to paid.
func (s *salaryService) MarkSalaryPaid(ctx context.Context, salaryID string, requestingUserID string) (*domain.Salary, error) {
	return s.transition(ctx, salaryID, domain.SalaryStatusPaid, requestingUserID)
}

func (s *salaryService) transition(ctx context.Context, salaryID string, next domain.SalaryStatus, actorUserID string) (*domain.Salary, error) {
	salary, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find salary for transition: %w", err)
	}
	if !salary.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move salary from %s to %s", apperrors.ErrValidation, salary.Status, next)
	}

	now := time.Now()
	salary.Status = next
	switch next {
	case domain.SalaryStatusApproved:
		salary.ApprovedBy = actorUserID
		salary.ApprovedAt = &now
	case domain.SalaryStatusPaid:
		salary.PaidAt = &now
	}
	salary.LastUpdatedAt = now
	salary.LastUpdatedBy = actorUserID

	if err := s.salaryRepo.UpdateSalary(ctx, *salary); err != nil {
		return nil, fmt.Errorf("failed to transition salary in service: %w", err)
	}
	return salary, nil
}
