package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// CreateBarrelRequest defines the payload for registering a new barrel.
type CreateBarrelRequest struct {
	Code           string          `json:"code" binding:"required,max=32"`
	CapacityLitres decimal.Decimal `json:"capacityLitres" binding:"required"`
	VolumeLitres   decimal.Decimal `json:"volumeLitres" binding:"required"`
	DRCPercent     decimal.Decimal `json:"drcPercent" binding:"required"`
	CollectedAt    *time.Time      `json:"collectedAt,omitempty"`
	ExpiryDate     time.Time       `json:"expiryDate" binding:"required"`
	Location       string          `json:"location" binding:"omitempty,max=100"`
}

// UpdateBarrelRequest defines the payload for editing barrel measurements.
type UpdateBarrelRequest struct {
	VolumeLitres *decimal.Decimal `json:"volumeLitres,omitempty"`
	DRCPercent   *decimal.Decimal `json:"drcPercent,omitempty"`
	ExpiryDate   *time.Time       `json:"expiryDate,omitempty"`
	Location     *string          `json:"location,omitempty" binding:"omitempty,max=100"`
}

// TransitionBarrelRequest moves a barrel to a new lifecycle status.
type TransitionBarrelRequest struct {
	Status string `json:"status" binding:"required,oneof=in_storage in_use dispatched scrapped"`
}

// BarrelResponse defines the API shape of a barrel.
type BarrelResponse struct {
	BarrelID       string          `json:"barrelID"`
	Code           string          `json:"code"`
	CapacityLitres decimal.Decimal `json:"capacityLitres"`
	VolumeLitres   decimal.Decimal `json:"volumeLitres"`
	DRCPercent     decimal.Decimal `json:"drcPercent"`
	Status         string          `json:"status"`
	CollectedAt    time.Time       `json:"collectedAt"`
	ExpiryDate     time.Time       `json:"expiryDate"`
	Location       string          `json:"location,omitempty"`
	DryRubberKg    decimal.Decimal `json:"dryRubberKg"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToBarrelResponse converts a domain.Barrel to BarrelResponse
func ToBarrelResponse(b *domain.Barrel) BarrelResponse {
	return BarrelResponse{
		BarrelID:       b.BarrelID,
		Code:           b.Code,
		CapacityLitres: b.CapacityLitres,
		VolumeLitres:   b.VolumeLitres,
		DRCPercent:     b.DRCPercent,
		Status:         string(b.Status),
		CollectedAt:    b.CollectedAt,
		ExpiryDate:     b.ExpiryDate,
		Location:       b.Location,
		DryRubberKg:    b.DryRubberKg(),
		CreatedAt:      b.CreatedAt,
		LastUpdatedAt:  b.LastUpdatedAt,
	}
}

// ToListBarrelResponse converts domain barrels to response DTOs
func ToListBarrelResponse(bs []domain.Barrel) []BarrelResponse {
	responses := make([]BarrelResponse, len(bs))
	for i := range bs {
		responses[i] = ToBarrelResponse(&bs[i])
	}
	return responses
}

// BarrelValuationResponse prices a barrel against the published rate.
type BarrelValuationResponse struct {
	BarrelID     string          `json:"barrelID"`
	DryRubberKg  decimal.Decimal `json:"dryRubberKg"`
	RatePer100Kg decimal.Decimal `json:"ratePer100Kg"`
	RateID       string          `json:"rateID"`
	Value        decimal.Decimal `json:"value"`
	ValuedAt     time.Time       `json:"valuedAt"`
}
