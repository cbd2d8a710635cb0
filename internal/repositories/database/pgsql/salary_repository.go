package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	"github.com/palamattam/rubber_plant_app/internal/models"
	"github.com/palamattam/rubber_plant_app/internal/utils/mapping"
)

type PgxSalaryRepository struct {
	BaseRepository
}

func newPgxSalaryRepository(pool *pgxpool.Pool) portsrepo.SalaryRepositoryFacade {
	return &PgxSalaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SalaryRepositoryFacade = (*PgxSalaryRepository)(nil)

const salaryColumns = `salary_id, worker_id, period, days_present, overtime_hours, gross_pay, deductions, net_pay, status, approved_by, approved_at, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func scanSalaryRow(row pgx.Row) (models.Salary, error) {
	var m models.Salary
	err := row.Scan(
		&m.SalaryID,
		&m.WorkerID,
		&m.Period,
		&m.DaysPresent,
		&m.OvertimeHours,
		&m.GrossPay,
		&m.Deductions,
		&m.NetPay,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSalaryRepository) SaveSalary(ctx context.Context, salary domain.Salary) error {
	modelSalary := mapping.ToModelSalary(salary)
	query := `
		INSERT INTO salaries (salary_id, worker_id, period, days_present, overtime_hours, gross_pay, deductions, net_pay, status, approved_by, approved_at, paid_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSalary.SalaryID,
		modelSalary.WorkerID,
		modelSalary.Period,
		modelSalary.DaysPresent,
		modelSalary.OvertimeHours,
		modelSalary.GrossPay,
		modelSalary.Deductions,
		modelSalary.NetPay,
		modelSalary.Status,
		modelSalary.ApprovedBy,
		modelSalary.ApprovedAt,
		modelSalary.PaidAt,
		modelSalary.CreatedAt,
		modelSalary.CreatedBy,
		modelSalary.LastUpdatedAt,
		modelSalary.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save salary: %w", err)
	}
	return nil
}

func (r *PgxSalaryRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE salary_id = $1;`
	modelSalary, err := scanSalaryRow(r.Pool.QueryRow(ctx, query, salaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary by ID %s: %w", salaryID, err)
	}
	domainSalary := mapping.ToDomainSalary(modelSalary)
	return &domainSalary, nil
}

func (r *PgxSalaryRepository) FindSalaryByWorkerPeriod(ctx context.Context, workerID, period string) (*domain.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE worker_id = $1 AND period = $2;`
	modelSalary, err := scanSalaryRow(r.Pool.QueryRow(ctx, query, workerID, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary for worker %s period %s: %w", workerID, period, err)
	}
	domainSalary := mapping.ToDomainSalary(modelSalary)
	return &domainSalary, nil
}

func (r *PgxSalaryRepository) ListSalariesByPeriod(ctx context.Context, period string) ([]domain.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE period = $1 ORDER BY worker_id;`
	rows, err := r.Pool.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	modelSalaries := []models.Salary{}
	for rows.Next() {
		modelSalary, err := scanSalaryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary row: %w", err)
		}
		modelSalaries = append(modelSalaries, modelSalary)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating salary rows: %w", rows.Err())
	}
	return mapping.ToDomainSalarySlice(modelSalaries), nil
}

func (r *PgxSalaryRepository) UpdateSalary(ctx context.Context, salary domain.Salary) error {
	modelSalary := mapping.ToModelSalary(salary)
	query := `
		UPDATE salaries
		SET days_present = $1, overtime_hours = $2, gross_pay = $3, deductions = $4, net_pay = $5, status = $6, approved_by = $7, approved_at = $8, paid_at = $9, last_updated_at = $10, last_updated_by = $11
		WHERE salary_id = $12;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelSalary.DaysPresent,
		modelSalary.OvertimeHours,
		modelSalary.GrossPay,
		modelSalary.Deductions,
		modelSalary.NetPay,
		modelSalary.Status,
		modelSalary.ApprovedBy,
		modelSalary.ApprovedAt,
		modelSalary.PaidAt,
		modelSalary.LastUpdatedAt,
		modelSalary.LastUpdatedBy,
		modelSalary.SalaryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("salary not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteDraftSalariesForPeriod clears draft rows so a period can be
// regenerated. Approved and paid rows are never touched.
func (r *PgxSalaryRepository) DeleteDraftSalariesForPeriod(ctx context.Context, period string) (int64, error) {
	query := `DELETE FROM salaries WHERE period = $1 AND status = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, period, string(domain.SalaryStatusDraft))
	if err != nil {
		return 0, fmt.Errorf("failed to delete draft salaries: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
