package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetBarrelStatusCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM barrels GROUP BY status;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query barrel status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan barrel count row: %w", err)
		}
		counts[status] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating barrel count rows: %w", rows.Err())
	}
	return counts, nil
}

func (r *PgxReportingRepository) CountWorkersPresentOn(ctx context.Context, date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM attendance WHERE date = $1 AND present;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count workers present: %w", err)
	}
	return count, nil
}

func (r *PgxReportingRepository) CountActiveWorkers(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM workers WHERE is_active;`
	var count int
	if err := r.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active workers: %w", err)
	}
	return count, nil
}

func (r *PgxReportingRepository) CountLowStockItems(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM stock_items WHERE quantity <= reorder_level;`
	var count int
	if err := r.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low stock items: %w", err)
	}
	return count, nil
}

// TotalDryRubberKg sums the dry rubber content of barrels still on site.
func (r *PgxReportingRepository) TotalDryRubberKg(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(volume_litres * drc_percent / 100), 0)
		FROM barrels
		WHERE status IN ($1, $2);
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query,
		string(domain.BarrelStatusInStorage),
		string(domain.BarrelStatusInUse),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum dry rubber: %w", err)
	}
	return total, nil
}
