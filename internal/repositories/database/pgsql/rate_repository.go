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

type PgxRateRepository struct {
	BaseRepository
}

func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

const rateColumns = `rate_id, product, company_rate, market_rate, unit, source, status, effective_date, fetched_from, notes, verified_by, verified_at, created_at, created_by, last_updated_at, last_updated_by`

func scanRateRow(row pgx.Row) (models.Rate, error) {
	var m models.Rate
	err := row.Scan(
		&m.RateID,
		&m.Product,
		&m.CompanyRate,
		&m.MarketRate,
		&m.Unit,
		&m.Source,
		&m.Status,
		&m.EffectiveDate,
		&m.FetchedFrom,
		&m.Notes,
		&m.VerifiedBy,
		&m.VerifiedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.Rate, error) {
	query := `SELECT ` + rateColumns + ` FROM rates WHERE rate_id = $1;`
	modelRate, err := scanRateRow(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate by ID %s: %w", rateID, err)
	}
	domainRate := mapping.ToDomainRate(modelRate)
	return &domainRate, nil
}

func (r *PgxRateRepository) FindLatestRate(ctx context.Context, product string) (*domain.Rate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM rates
		WHERE product = $1
		ORDER BY effective_date DESC, last_updated_at DESC
		LIMIT 1;
	`
	modelRate, err := scanRateRow(r.Pool.QueryRow(ctx, query, product))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate for %s: %w", product, err)
	}
	domainRate := mapping.ToDomainRate(modelRate)
	return &domainRate, nil
}

func (r *PgxRateRepository) FindLatestPublishedRate(ctx context.Context, product string) (*domain.Rate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM rates
		WHERE product = $1 AND status = $2
		ORDER BY effective_date DESC, verified_at DESC
		LIMIT 1;
	`
	modelRate, err := scanRateRow(r.Pool.QueryRow(ctx, query, product, string(domain.RateStatusPublished)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest published rate for %s: %w", product, err)
	}
	domainRate := mapping.ToDomainRate(modelRate)
	return &domainRate, nil
}

func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.Rate) error {
	modelRate := mapping.ToModelRate(rate)
	query := `
		INSERT INTO rates (rate_id, product, company_rate, market_rate, unit, source, status, effective_date, fetched_from, notes, verified_by, verified_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.RateID,
		modelRate.Product,
		modelRate.CompanyRate,
		modelRate.MarketRate,
		modelRate.Unit,
		modelRate.Source,
		modelRate.Status,
		modelRate.EffectiveDate,
		modelRate.FetchedFrom,
		modelRate.Notes,
		modelRate.VerifiedBy,
		modelRate.VerifiedAt,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate: %w", err)
	}
	return nil
}

func (r *PgxRateRepository) UpdateRate(ctx context.Context, rate domain.Rate) error {
	modelRate := mapping.ToModelRate(rate)
	query := `
		UPDATE rates
		SET company_rate = $1, market_rate = $2, unit = $3, source = $4, status = $5, effective_date = $6, fetched_from = $7, notes = $8, verified_by = $9, verified_at = $10, last_updated_at = $11, last_updated_by = $12
		WHERE rate_id = $13;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelRate.CompanyRate,
		modelRate.MarketRate,
		modelRate.Unit,
		modelRate.Source,
		modelRate.Status,
		modelRate.EffectiveDate,
		modelRate.FetchedFrom,
		modelRate.Notes,
		modelRate.VerifiedBy,
		modelRate.VerifiedAt,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
		modelRate.RateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("rate not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// UpsertDailyRate keeps a single scheduler-sourced record per day. A record
// for the same product and source whose effective date falls inside
// [dayStart, dayEnd) is overwritten, otherwise the rate is inserted fresh.
func (r *PgxRateRepository) UpsertDailyRate(ctx context.Context, rate domain.Rate, dayStart, dayEnd time.Time) (*domain.Rate, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var existingID string
	selectQuery := `
		SELECT rate_id FROM rates
		WHERE product = $1 AND source = $2 AND effective_date >= $3 AND effective_date < $4
		ORDER BY effective_date DESC
		LIMIT 1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, selectQuery, rate.Product, string(rate.Source), dayStart, dayEnd).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up daily rate: %w", err)
	}

	modelRate := mapping.ToModelRate(rate)
	if existingID != "" {
		updateQuery := `
			UPDATE rates
			SET company_rate = $1, market_rate = $2, unit = $3, status = $4, effective_date = $5, fetched_from = $6, verified_by = NULL, verified_at = NULL, last_updated_at = $7, last_updated_by = $8
			WHERE rate_id = $9;
		`
		_, err = tx.Exec(ctx, updateQuery,
			modelRate.CompanyRate,
			modelRate.MarketRate,
			modelRate.Unit,
			modelRate.Status,
			modelRate.EffectiveDate,
			modelRate.FetchedFrom,
			modelRate.LastUpdatedAt,
			modelRate.LastUpdatedBy,
			existingID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to overwrite daily rate: %w", err)
		}
		rate.RateID = existingID
	} else {
		insertQuery := `
			INSERT INTO rates (rate_id, product, company_rate, market_rate, unit, source, status, effective_date, fetched_from, notes, verified_by, verified_at, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
		`
		_, err = tx.Exec(ctx, insertQuery,
			modelRate.RateID,
			modelRate.Product,
			modelRate.CompanyRate,
			modelRate.MarketRate,
			modelRate.Unit,
			modelRate.Source,
			modelRate.Status,
			modelRate.EffectiveDate,
			modelRate.FetchedFrom,
			modelRate.Notes,
			modelRate.VerifiedBy,
			modelRate.VerifiedAt,
			modelRate.CreatedAt,
			modelRate.CreatedBy,
			modelRate.LastUpdatedAt,
			modelRate.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert daily rate: %w", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *PgxRateRepository) AppendHistory(ctx context.Context, entry domain.RateHistoryEntry) error {
	query := `
		INSERT INTO rate_history (entry_id, product, company_rate, market_rate, source, fetched_from, effective_date, recorded_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.Product,
		entry.CompanyRate,
		entry.MarketRate,
		string(entry.Source),
		entry.FetchedFrom,
		entry.EffectiveDate,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append rate history: %w", err)
	}
	return nil
}

func (r *PgxRateRepository) ListHistory(ctx context.Context, product string, limit int, before *time.Time) ([]domain.RateHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT entry_id, product, company_rate, market_rate, source, fetched_from, effective_date, recorded_at
		FROM rate_history
		WHERE product = $1 AND ($2::timestamptz IS NULL OR recorded_at < $2)
		ORDER BY recorded_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, product, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history: %w", err)
	}
	defer rows.Close()

	entries := []domain.RateHistoryEntry{}
	for rows.Next() {
		var m models.RateHistoryEntry
		err := rows.Scan(
			&m.EntryID,
			&m.Product,
			&m.CompanyRate,
			&m.MarketRate,
			&m.Source,
			&m.FetchedFrom,
			&m.EffectiveDate,
			&m.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, mapping.ToDomainRateHistoryEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxRateRepository) PruneHistoryBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM rate_history WHERE recorded_at < $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune rate history: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
