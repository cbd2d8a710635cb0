package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	"github.com/palamattam/rubber_plant_app/internal/models"
	"github.com/palamattam/rubber_plant_app/internal/utils/mapping"
)

type PgxWorkerRepository struct {
	BaseRepository
}

func newPgxWorkerRepository(pool *pgxpool.Pool) portsrepo.WorkerRepositoryFacade {
	return &PgxWorkerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.WorkerRepositoryFacade = (*PgxWorkerRepository)(nil)

const workerColumns = `worker_id, name, phone, category, daily_wage, joined_at, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanWorkerRow(row pgx.Row) (models.Worker, error) {
	var m models.Worker
	err := row.Scan(
		&m.WorkerID,
		&m.Name,
		&m.Phone,
		&m.Category,
		&m.DailyWage,
		&m.JoinedAt,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const attendanceColumns = `attendance_id, worker_id, date, present, shift, overtime_hours, created_at, created_by, last_updated_at, last_updated_by`

func scanAttendanceRow(row pgx.Row) (models.Attendance, error) {
	var m models.Attendance
	err := row.Scan(
		&m.AttendanceID,
		&m.WorkerID,
		&m.Date,
		&m.Present,
		&m.Shift,
		&m.OvertimeHours,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	modelWorker := mapping.ToModelWorker(worker)
	query := `
		INSERT INTO workers (worker_id, name, phone, category, daily_wage, joined_at, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelWorker.WorkerID,
		modelWorker.Name,
		modelWorker.Phone,
		modelWorker.Category,
		modelWorker.DailyWage,
		modelWorker.JoinedAt,
		modelWorker.IsActive,
		modelWorker.CreatedAt,
		modelWorker.CreatedBy,
		modelWorker.LastUpdatedAt,
		modelWorker.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save worker: %w", err)
	}
	return nil
}

func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1;`
	modelWorker, err := scanWorkerRow(r.Pool.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find worker by ID %s: %w", workerID, err)
	}
	domainWorker := mapping.ToDomainWorker(modelWorker)
	return &domainWorker, nil
}

func (r *PgxWorkerRepository) ListWorkers(ctx context.Context, includeInactive bool) ([]domain.Worker, error) {
	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE ($1 OR is_active)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	modelWorkers := []models.Worker{}
	for rows.Next() {
		modelWorker, err := scanWorkerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker row: %w", err)
		}
		modelWorkers = append(modelWorkers, modelWorker)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating worker rows: %w", rows.Err())
	}
	return mapping.ToDomainWorkerSlice(modelWorkers), nil
}

func (r *PgxWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	modelWorker := mapping.ToModelWorker(worker)
	query := `
		UPDATE workers
		SET name = $1, phone = $2, category = $3, daily_wage = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE worker_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelWorker.Name,
		modelWorker.Phone,
		modelWorker.Category,
		modelWorker.DailyWage,
		modelWorker.IsActive,
		modelWorker.LastUpdatedAt,
		modelWorker.LastUpdatedBy,
		modelWorker.WorkerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// UpsertAttendance keeps one row per worker per day. Marking twice replaces
// the earlier mark rather than appending.
func (r *PgxWorkerRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error) {
	modelAtt := mapping.ToModelAttendance(attendance)
	query := `
		INSERT INTO attendance (attendance_id, worker_id, date, present, shift, overtime_hours, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (worker_id, date) DO UPDATE SET
			present = EXCLUDED.present,
			shift = EXCLUDED.shift,
			overtime_hours = EXCLUDED.overtime_hours,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + attendanceColumns + `;
	`
	stored, err := scanAttendanceRow(r.Pool.QueryRow(ctx, query,
		modelAtt.AttendanceID,
		modelAtt.WorkerID,
		modelAtt.Date,
		modelAtt.Present,
		modelAtt.Shift,
		modelAtt.OvertimeHours,
		modelAtt.CreatedAt,
		modelAtt.CreatedBy,
		modelAtt.LastUpdatedAt,
		modelAtt.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	domainAtt := mapping.ToDomainAttendance(stored)
	return &domainAtt, nil
}

func (r *PgxWorkerRepository) ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE date = $1 ORDER BY worker_id;`
	rows, err := r.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	modelAtts := []models.Attendance{}
	for rows.Next() {
		modelAtt, err := scanAttendanceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		modelAtts = append(modelAtts, modelAtt)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", rows.Err())
	}
	return mapping.ToDomainAttendanceSlice(modelAtts), nil
}

func (r *PgxWorkerRepository) ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]domain.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE date >= $1 AND date < $2
		ORDER BY date, worker_id;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	defer rows.Close()

	modelAtts := []models.Attendance{}
	for rows.Next() {
		modelAtt, err := scanAttendanceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		modelAtts = append(modelAtts, modelAtt)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", rows.Err())
	}
	return mapping.ToDomainAttendanceSlice(modelAtts), nil
}
