package services

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/dto"
)

// WorkerReaderSvc defines read operations for worker data
type WorkerReaderSvc interface {
	// GetWorkerByID retrieves a worker by ID.
	GetWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)

	// ListWorkers retrieves workers, including inactive ones when asked.
	ListWorkers(ctx context.Context, includeInactive bool) ([]domain.Worker, error)

	// ListAttendanceByDate retrieves all attendance rows for one day.
	ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error)

	// ListWorkerAttendance retrieves one worker's attendance over a range.
	ListWorkerAttendance(ctx context.Context, workerID string, from, to time.Time) ([]domain.Attendance, error)
}

// WorkerWriterSvc defines write operations for worker data
type WorkerWriterSvc interface {
	// CreateWorker registers a new plant worker.
	CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error)

	// UpdateWorker edits an existing worker.
	UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, requestingUserID string) (*domain.Worker, error)

	// MarkAttendance upserts one worker's attendance for a day.
	MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, requestingUserID string) (*domain.Attendance, error)
}

// WorkerSvcFacade combines all worker-related service interfaces
type WorkerSvcFacade interface {
	WorkerReaderSvc
	WorkerWriterSvc
}

// SalaryReaderSvc defines read operations for salary data
type SalaryReaderSvc interface {
	// GetSalaryByID retrieves a salary record by ID.
	GetSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error)

	// ListSalariesByPeriod retrieves all salary records for a YYYY-MM period.
	ListSalariesByPeriod(ctx context.Context, period string) ([]domain.Salary, error)
}

// SalaryWriterSvc defines write operations for salary data
type SalaryWriterSvc interface {
	// GenerateSalaries computes draft salaries for all active workers for a period,
	// replacing any existing drafts for that period.
	GenerateSalaries(ctx context.Context, period string, requestingUserID string) ([]domain.Salary, error)

	// SetDeductions adjusts a draft salary's deductions and recomputes net pay.
	SetDeductions(ctx context.Context, salaryID string, req dto.SetDeductionsRequest, requestingUserID string) (*domain.Salary, error)

	// ApproveSalary moves a draft salary to approved.
	ApproveSalary(ctx context.Context, salaryID string, approverUserID string) (*domain.Salary, error)

	// MarkSalaryPaid moves an approved salary to paid.
	MarkSalaryPaid(ctx context.Context, salaryID string, requestingUserID string) (*domain.Salary, error)
}

// SalarySvcFacade combines all salary-related service interfaces
type SalarySvcFacade interface {
	SalaryReaderSvc
	SalaryWriterSvc
}
