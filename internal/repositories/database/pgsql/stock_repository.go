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

type PgxStockRepository struct {
	BaseRepository
}

func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

const stockItemColumns = `item_id, name, category, unit, quantity, reorder_level, location, created_at, created_by, last_updated_at, last_updated_by`

func scanStockItemRow(row pgx.Row) (models.StockItem, error) {
	var m models.StockItem
	err := row.Scan(
		&m.ItemID,
		&m.Name,
		&m.Category,
		&m.Unit,
		&m.Quantity,
		&m.ReorderLevel,
		&m.Location,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem) error {
	modelItem := mapping.ToModelStockItem(item)
	query := `
		INSERT INTO stock_items (item_id, name, category, unit, quantity, reorder_level, location, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelItem.ItemID,
		modelItem.Name,
		modelItem.Category,
		modelItem.Unit,
		modelItem.Quantity,
		modelItem.ReorderLevel,
		modelItem.Location,
		modelItem.CreatedAt,
		modelItem.CreatedBy,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save stock item: %w", err)
	}
	return nil
}

func (r *PgxStockRepository) FindStockItemByID(ctx context.Context, itemID string) (*domain.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE item_id = $1;`
	modelItem, err := scanStockItemRow(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock item by ID %s: %w", itemID, err)
	}
	domainItem := mapping.ToDomainStockItem(modelItem)
	return &domainItem, nil
}

func (r *PgxStockRepository) ListStockItems(ctx context.Context, category *string) ([]domain.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE ($1::text IS NULL OR category = $1)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock items: %w", err)
	}
	defer rows.Close()

	modelItems := []models.StockItem{}
	for rows.Next() {
		modelItem, err := scanStockItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock item row: %w", err)
		}
		modelItems = append(modelItems, modelItem)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock item rows: %w", rows.Err())
	}
	return mapping.ToDomainStockItemSlice(modelItems), nil
}

func (r *PgxStockRepository) ListLowStockItems(ctx context.Context) ([]domain.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE quantity <= reorder_level
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock items: %w", err)
	}
	defer rows.Close()

	modelItems := []models.StockItem{}
	for rows.Next() {
		modelItem, err := scanStockItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock item row: %w", err)
		}
		modelItems = append(modelItems, modelItem)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock item rows: %w", rows.Err())
	}
	return mapping.ToDomainStockItemSlice(modelItems), nil
}

func (r *PgxStockRepository) UpdateStockItem(ctx context.Context, item domain.StockItem) error {
	modelItem := mapping.ToModelStockItem(item)
	query := `
		UPDATE stock_items
		SET name = $1, category = $2, reorder_level = $3, location = $4, last_updated_at = $5, last_updated_by = $6
		WHERE item_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelItem.Name,
		modelItem.Category,
		modelItem.ReorderLevel,
		modelItem.Location,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
		modelItem.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("stock item not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// AdjustStock changes an item's quantity and records the movement in one
// transaction. The row is locked so concurrent adjustments serialize, and a
// delta that would drive the quantity negative is rejected.
func (r *PgxStockRepository) AdjustStock(ctx context.Context, itemID string, delta domain.StockMovement) (*domain.StockItem, *domain.StockMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE item_id = $1 FOR UPDATE;`
	modelItem, err := scanStockItemRow(tx.QueryRow(ctx, lockQuery, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock stock item %s: %w", itemID, err)
	}

	newQuantity := modelItem.Quantity.Add(delta.Delta)
	if newQuantity.IsNegative() {
		return nil, nil, apperrors.NewValidationError(
			fmt.Sprintf("adjustment of %s would leave %s below zero", delta.Delta.String(), modelItem.Name))
	}

	now := time.Now().UTC()
	updateQuery := `
		UPDATE stock_items
		SET quantity = $1, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $4;
	`
	if _, err := tx.Exec(ctx, updateQuery, newQuantity, now, delta.RecordedBy, itemID); err != nil {
		return nil, nil, fmt.Errorf("failed to adjust stock quantity: %w", err)
	}

	movementQuery := `
		INSERT INTO stock_movements (movement_id, item_id, delta, reason, resulting_quantity, recorded_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, movementQuery,
		delta.MovementID,
		itemID,
		delta.Delta,
		delta.Reason,
		newQuantity,
		now,
		delta.RecordedBy,
	); err != nil {
		return nil, nil, fmt.Errorf("failed to record stock movement: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	modelItem.Quantity = newQuantity
	modelItem.LastUpdatedAt = now
	modelItem.LastUpdatedBy = delta.RecordedBy
	domainItem := mapping.ToDomainStockItem(modelItem)

	movement := delta
	movement.ItemID = itemID
	movement.ResultingQuantity = newQuantity
	movement.RecordedAt = now
	return &domainItem, &movement, nil
}

func (r *PgxStockRepository) ListMovements(ctx context.Context, itemID string, limit int, before *time.Time) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT movement_id, item_id, delta, reason, resulting_quantity, recorded_at, recorded_by
		FROM stock_movements
		WHERE item_id = $1 AND ($2::timestamptz IS NULL OR recorded_at < $2)
		ORDER BY recorded_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, itemID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	modelMovements := []models.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(
			&m.MovementID,
			&m.ItemID,
			&m.Delta,
			&m.Reason,
			&m.ResultingQuantity,
			&m.RecordedAt,
			&m.RecordedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		modelMovements = append(modelMovements, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", rows.Err())
	}
	return mapping.ToDomainStockMovementSlice(modelMovements), nil
}
