package mapping

import (
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/models"
)

// ToModelStockItem converts a domain StockItem to a model StockItem
func ToModelStockItem(d domain.StockItem) models.StockItem {
	return models.StockItem{
		ItemID:       d.ItemID,
		Name:         d.Name,
		Category:     d.Category,
		Unit:         d.Unit,
		Quantity:     d.Quantity,
		ReorderLevel: d.ReorderLevel,
		Location:     d.Location,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockItem converts a model StockItem to a domain StockItem
func ToDomainStockItem(m models.StockItem) domain.StockItem {
	return domain.StockItem{
		ItemID:       m.ItemID,
		Name:         m.Name,
		Category:     m.Category,
		Unit:         m.Unit,
		Quantity:     m.Quantity,
		ReorderLevel: m.ReorderLevel,
		Location:     m.Location,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockItemSlice converts model StockItems to domain form
func ToDomainStockItemSlice(ms []models.StockItem) []domain.StockItem {
	ds := make([]domain.StockItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockItem(m)
	}
	return ds
}

// ToDomainStockMovement converts a model StockMovement to domain form
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:        m.MovementID,
		ItemID:            m.ItemID,
		Delta:             m.Delta,
		Reason:            m.Reason,
		ResultingQuantity: m.ResultingQuantity,
		RecordedAt:        m.RecordedAt,
		RecordedBy:        m.RecordedBy,
	}
}

// ToDomainStockMovementSlice converts model StockMovements to domain form
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}
