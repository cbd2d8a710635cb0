package mapping

import (
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/models"
)

// ToModelBarrel converts a domain Barrel to a model Barrel
func ToModelBarrel(d domain.Barrel) models.Barrel {
	return models.Barrel{
		BarrelID:       d.BarrelID,
		Code:           d.Code,
		CapacityLitres: d.CapacityLitres,
		VolumeLitres:   d.VolumeLitres,
		DRCPercent:     d.DRCPercent,
		Status:         string(d.Status),
		CollectedAt:    d.CollectedAt,
		ExpiryDate:     d.ExpiryDate,
		Location:       d.Location,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBarrel converts a model Barrel to a domain Barrel
func ToDomainBarrel(m models.Barrel) domain.Barrel {
	return domain.Barrel{
		BarrelID:       m.BarrelID,
		Code:           m.Code,
		CapacityLitres: m.CapacityLitres,
		VolumeLitres:   m.VolumeLitres,
		DRCPercent:     m.DRCPercent,
		Status:         domain.BarrelStatus(m.Status),
		CollectedAt:    m.CollectedAt,
		ExpiryDate:     m.ExpiryDate,
		Location:       m.Location,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBarrelSlice converts a slice of model Barrels to domain Barrels
func ToDomainBarrelSlice(ms []models.Barrel) []domain.Barrel {
	ds := make([]domain.Barrel, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBarrel(m)
	}
	return ds
}
