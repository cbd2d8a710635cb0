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

type workerService struct {
	workerRepo portsrepo.WorkerRepositoryFacade
}

// NewWorkerService creates the worker and attendance service.
func NewWorkerService(workerRepo portsrepo.WorkerRepositoryFacade) portssvc.WorkerSvcFacade {
	return &workerService{workerRepo: workerRepo}
}

var _ portssvc.WorkerSvcFacade = (*workerService)(nil)

func (s *workerService) CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error) {
	category := domain.WorkerCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown worker category %q", apperrors.ErrValidation, req.Category)
	}
	if req.DailyWage.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: daily wage must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	joinedAt := now
	if req.JoinedAt != nil {
		joinedAt = *req.JoinedAt
	}

	worker := domain.Worker{
		WorkerID:  uuid.NewString(),
		Name:      req.Name,
		Phone:     req.Phone,
		Category:  category,
		DailyWage: req.DailyWage,
		JoinedAt:  joinedAt,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workerRepo.SaveWorker(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to create worker in service: %w", err)
	}
	return &worker, nil
}

func (s *workerService) GetWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker by ID in service: %w", err)
	}
	return worker, nil
}

func (s *workerService) ListWorkers(ctx context.Context, includeInactive bool) ([]domain.Worker, error) {
	workers, err := s.workerRepo.ListWorkers(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers in service: %w", err)
	}
	if workers == nil {
		return []domain.Worker{}, nil
	}
	return workers, nil
}

func (s *workerService) UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, requestingUserID string) (*domain.Worker, error) {
	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker for update: %w", err)
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Phone != nil {
		worker.Phone = *req.Phone
	}
	if req.Category != nil {
		category := domain.WorkerCategory(*req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown worker category %q", apperrors.ErrValidation, *req.Category)
		}
		worker.Category = category
	}
	if req.DailyWage != nil {
		if req.DailyWage.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: daily wage must be positive", apperrors.ErrValidation)
		}
		worker.DailyWage = *req.DailyWage
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}

	worker.LastUpdatedAt = time.Now()
	worker.LastUpdatedBy = requestingUserID

	if err := s.workerRepo.UpdateWorker(ctx, *worker); err != nil {
		return nil, fmt.Errorf("failed to update worker in service: %w", err)
	}
	return worker, nil
}

// MarkAttendance upserts one worker's record for a day. The date is
// normalized to midnight UTC so (worker, day) uniqueness holds regardless
// of when during the day the mark was made.
func (s *workerService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, requestingUserID string) (*domain.Attendance, error) {
	worker, err := s.workerRepo.FindWorkerByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker for attendance: %w", err)
	}
	if !worker.IsActive {
		return nil, fmt.Errorf("%w: worker %s is inactive", apperrors.ErrValidation, worker.Name)
	}

	day := time.Now().UTC()
	if req.Date != nil {
		day = req.Date.UTC()
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	shift := domain.ShiftFull
	if req.Shift != "" {
		shift = domain.AttendanceShift(req.Shift)
	}
	overtime := decimal.Zero
	if req.OvertimeHours != nil {
		if req.OvertimeHours.IsNegative() {
			return nil, fmt.Errorf("%w: overtime hours cannot be negative", apperrors.ErrValidation)
		}
		overtime = *req.OvertimeHours
	}
	if !req.Present && (overtime.IsPositive()) {
		return nil, fmt.Errorf("%w: absent worker cannot have overtime", apperrors.ErrValidation)
	}

	now := time.Now()
	attendance := domain.Attendance{
		AttendanceID:  uuid.NewString(),
		WorkerID:      req.WorkerID,
		Date:          day,
		Present:       req.Present,
		Shift:         shift,
		OvertimeHours: overtime,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	stored, err := s.workerRepo.UpsertAttendance(ctx, attendance)
	if err != nil {
		return nil, fmt.Errorf("failed to mark attendance in service: %w", err)
	}
	return stored, nil
}

func (s *workerService) ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	attendance, err := s.workerRepo.ListAttendanceByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance in service: %w", err)
	}
	if attendance == nil {
		return []domain.Attendance{}, nil
	}
	return attendance, nil
}

func (s *workerService) ListWorkerAttendance(ctx context.Context, workerID string, from, to time.Time) ([]domain.Attendance, error) {
	all, err := s.workerRepo.ListAttendanceBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker attendance in service: %w", err)
	}
	filtered := []domain.Attendance{}
	for _, a := range all {
		if a.WorkerID == workerID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}
