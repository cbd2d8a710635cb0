package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/utils/pagination"
)

type stockService struct {
	stockRepo portsrepo.StockRepositoryFacade
}

// NewStockService creates the inventory service.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) CreateStockItem(ctx context.Context, req dto.CreateStockItemRequest, creatorUserID string) (*domain.StockItem, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
	}
	if req.ReorderLevel.IsNegative() {
		return nil, fmt.Errorf("%w: reorder level cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	item := domain.StockItem{
		ItemID:       uuid.NewString(),
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		Location:     req.Location,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.stockRepo.SaveStockItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create stock item in service: %w", err)
	}
	return &item, nil
}

func (s *stockService) GetStockItemByID(ctx context.Context, itemID string) (*domain.StockItem, error) {
	item, err := s.stockRepo.FindStockItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock item by ID in service: %w", err)
	}
	return item, nil
}

func (s *stockService) ListStockItems(ctx context.Context, category *string) ([]domain.StockItem, error) {
	items, err := s.stockRepo.ListStockItems(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock items in service: %w", err)
	}
	if items == nil {
		return []domain.StockItem{}, nil
	}
	return items, nil
}

func (s *stockService) ListLowStockItems(ctx context.Context) ([]domain.StockItem, error) {
	items, err := s.stockRepo.ListLowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items in service: %w", err)
	}
	if items == nil {
		return []domain.StockItem{}, nil
	}
	return items, nil
}

// UpdateStockItem edits item metadata. Quantity is untouchable here so the
// movement trail stays the single source of quantity changes.
func (s *stockService) UpdateStockItem(ctx context.Context, itemID string, req dto.UpdateStockItemRequest, requestingUserID string) (*domain.StockItem, error) {
	item, err := s.stockRepo.FindStockItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock item for update: %w", err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ReorderLevel != nil {
		if req.ReorderLevel.IsNegative() {
			return nil, fmt.Errorf("%w: reorder level cannot be negative", apperrors.ErrValidation)
		}
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	item.LastUpdatedAt = time.Now()
	item.LastUpdatedBy = requestingUserID

	if err := s.stockRepo.UpdateStockItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update stock item in service: %w", err)
	}
	return item, nil
}

// AdjustStock applies a signed delta to an item. The repository runs the
// read-modify-write in one transaction and rejects a negative result.
func (s *stockService) AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest, requestingUserID string) (*domain.StockItem, *domain.StockMovement, error) {
	if req.Delta.IsZero() {
		return nil, nil, fmt.Errorf("%w: delta cannot be zero", apperrors.ErrValidation)
	}

	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		ItemID:     itemID,
		Delta:      req.Delta,
		Reason:     req.Reason,
		RecordedAt: time.Now().UTC(),
		RecordedBy: requestingUserID,
	}

	item, stored, err := s.stockRepo.AdjustStock(ctx, itemID, movement)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to adjust stock in service: %w", err)
	}
	return item, stored, nil
}

func (s *stockService) ListMovements(ctx context.Context, itemID string, limit int, nextToken string) ([]domain.StockMovement, string, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var before *time.Time
	if nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		before = &cursor
	}

	movements, err := s.stockRepo.ListMovements(ctx, itemID, limit, before)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list stock movements in service: %w", err)
	}

	var newToken string
	if len(movements) == limit {
		newToken = pagination.EncodeDateBasedToken(movements[len(movements)-1].RecordedAt)
	}
	return movements, newToken, nil
}
