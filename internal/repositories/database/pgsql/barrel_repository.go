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

type PgxBarrelRepository struct {
	BaseRepository
}

func newPgxBarrelRepository(pool *pgxpool.Pool) portsrepo.BarrelRepositoryFacade {
	return &PgxBarrelRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BarrelRepositoryFacade = (*PgxBarrelRepository)(nil)

const barrelColumns = `barrel_id, code, capacity_litres, volume_litres, drc_percent, status, collected_at, expiry_date, location, created_at, created_by, last_updated_at, last_updated_by`

func scanBarrelRow(row pgx.Row) (models.Barrel, error) {
	var m models.Barrel
	err := row.Scan(
		&m.BarrelID,
		&m.Code,
		&m.CapacityLitres,
		&m.VolumeLitres,
		&m.DRCPercent,
		&m.Status,
		&m.CollectedAt,
		&m.ExpiryDate,
		&m.Location,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBarrelRepository) SaveBarrel(ctx context.Context, barrel domain.Barrel) error {
	modelBarrel := mapping.ToModelBarrel(barrel)
	query := `
		INSERT INTO barrels (barrel_id, code, capacity_litres, volume_litres, drc_percent, status, collected_at, expiry_date, location, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelBarrel.BarrelID,
		modelBarrel.Code,
		modelBarrel.CapacityLitres,
		modelBarrel.VolumeLitres,
		modelBarrel.DRCPercent,
		modelBarrel.Status,
		modelBarrel.CollectedAt,
		modelBarrel.ExpiryDate,
		modelBarrel.Location,
		modelBarrel.CreatedAt,
		modelBarrel.CreatedBy,
		modelBarrel.LastUpdatedAt,
		modelBarrel.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save barrel %s: %w", modelBarrel.Code, err)
	}
	return nil
}

func (r *PgxBarrelRepository) FindBarrelByID(ctx context.Context, barrelID string) (*domain.Barrel, error) {
	query := `SELECT ` + barrelColumns + ` FROM barrels WHERE barrel_id = $1;`
	modelBarrel, err := scanBarrelRow(r.Pool.QueryRow(ctx, query, barrelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find barrel by ID %s: %w", barrelID, err)
	}
	domainBarrel := mapping.ToDomainBarrel(modelBarrel)
	return &domainBarrel, nil
}

func (r *PgxBarrelRepository) FindBarrelByCode(ctx context.Context, code string) (*domain.Barrel, error) {
	query := `SELECT ` + barrelColumns + ` FROM barrels WHERE code = $1;`
	modelBarrel, err := scanBarrelRow(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find barrel by code %s: %w", code, err)
	}
	domainBarrel := mapping.ToDomainBarrel(modelBarrel)
	return &domainBarrel, nil
}

func (r *PgxBarrelRepository) ListBarrels(ctx context.Context, status *domain.BarrelStatus) ([]domain.Barrel, error) {
	query := `
		SELECT ` + barrelColumns + `
		FROM barrels
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY collected_at DESC;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	rows, err := r.Pool.Query(ctx, query, statusArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query barrels: %w", err)
	}
	defer rows.Close()

	modelBarrels := []models.Barrel{}
	for rows.Next() {
		modelBarrel, err := scanBarrelRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan barrel row: %w", err)
		}
		modelBarrels = append(modelBarrels, modelBarrel)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating barrel rows: %w", rows.Err())
	}
	return mapping.ToDomainBarrelSlice(modelBarrels), nil
}

// ListFEFO orders in-storage barrels by expiry so the ones closest to going
// bad are used first. Empty barrels are excluded.
func (r *PgxBarrelRepository) ListFEFO(ctx context.Context, asOf time.Time, limit int) ([]domain.Barrel, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + barrelColumns + `
		FROM barrels
		WHERE status = $1 AND volume_litres > 0 AND expiry_date >= $2
		ORDER BY expiry_date ASC, collected_at ASC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.BarrelStatusInStorage), asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query FEFO barrels: %w", err)
	}
	defer rows.Close()

	modelBarrels := []models.Barrel{}
	for rows.Next() {
		modelBarrel, err := scanBarrelRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan barrel row: %w", err)
		}
		modelBarrels = append(modelBarrels, modelBarrel)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating barrel rows: %w", rows.Err())
	}
	return mapping.ToDomainBarrelSlice(modelBarrels), nil
}

func (r *PgxBarrelRepository) UpdateBarrel(ctx context.Context, barrel domain.Barrel) error {
	modelBarrel := mapping.ToModelBarrel(barrel)
	query := `
		UPDATE barrels
		SET volume_litres = $1, drc_percent = $2, status = $3, expiry_date = $4, location = $5, last_updated_at = $6, last_updated_by = $7
		WHERE barrel_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelBarrel.VolumeLitres,
		modelBarrel.DRCPercent,
		modelBarrel.Status,
		modelBarrel.ExpiryDate,
		modelBarrel.Location,
		modelBarrel.LastUpdatedAt,
		modelBarrel.LastUpdatedBy,
		modelBarrel.BarrelID,
	)
	if err != nil {
		return fmt.Errorf("failed to update barrel: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("barrel not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
