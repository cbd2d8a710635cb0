package repositories

import (
	"context"
	"time"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// WorkerReader defines read operations for workers and attendance
type WorkerReader interface {
	FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)
	ListWorkers(ctx context.Context, includeInactive bool) ([]domain.Worker, error)
	ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error)
	// ListAttendanceBetween returns all attendance rows with date in
	// [from, to), across workers.
	ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]domain.Attendance, error)
}

// WorkerWriter defines write operations for workers and attendance
type WorkerWriter interface {
	SaveWorker(ctx context.Context, worker domain.Worker) error
	UpdateWorker(ctx context.Context, worker domain.Worker) error
	// UpsertAttendance writes the single row for (worker, day); marking twice
	// overwrites the earlier mark.
	UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error)
}

// WorkerRepositoryFacade combines all worker-related repository interfaces
type WorkerRepositoryFacade interface {
	WorkerReader
	WorkerWriter
}

// SalaryReader defines read operations for salary records
type SalaryReader interface {
	FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error)
	FindSalaryByWorkerPeriod(ctx context.Context, workerID, period string) (*domain.Salary, error)
	ListSalariesByPeriod(ctx context.Context, period string) ([]domain.Salary, error)
}

// SalaryWriter defines write operations for salary records
type SalaryWriter interface {
	SaveSalary(ctx context.Context, salary domain.Salary) error
	UpdateSalary(ctx context.Context, salary domain.Salary) error
	// DeleteDraftSalariesForPeriod removes draft records so a period can be
	// regenerated; approved and paid records are untouched.
	DeleteDraftSalariesForPeriod(ctx context.Context, period string) (int64, error)
}

// SalaryRepositoryFacade combines all salary-related repository interfaces
type SalaryRepositoryFacade interface {
	SalaryReader
	SalaryWriter
}
