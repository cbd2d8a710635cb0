package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarrelStatus is the lifecycle state of a latex barrel.
type BarrelStatus string

const (
	BarrelStatusInStorage  BarrelStatus = "in_storage"
	BarrelStatusInUse      BarrelStatus = "in_use"
	BarrelStatusDispatched BarrelStatus = "dispatched"
	BarrelStatusScrapped   BarrelStatus = "scrapped"
)

// IsValid reports whether the status is a known barrel status.
func (s BarrelStatus) IsValid() bool {
	switch s {
	case BarrelStatusInStorage, BarrelStatusInUse, BarrelStatusDispatched, BarrelStatusScrapped:
		return true
	}
	return false
}

// CanTransitionTo enforces the barrel lifecycle:
// in_storage -> in_use -> dispatched, and any non-terminal state -> scrapped.
func (s BarrelStatus) CanTransitionTo(next BarrelStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case BarrelStatusInStorage:
		return next == BarrelStatusInUse || next == BarrelStatusScrapped
	case BarrelStatusInUse:
		return next == BarrelStatusDispatched || next == BarrelStatusScrapped
	}
	return false
}

// Barrel represents a latex barrel tracked through collection to dispatch.
type Barrel struct {
	BarrelID       string          `json:"barrelID"` // Primary Key (UUID)
	Code           string          `json:"code"`     // human-readable label painted on the barrel
	CapacityLitres decimal.Decimal `json:"capacityLitres"`
	VolumeLitres   decimal.Decimal `json:"volumeLitres"`
	DRCPercent     decimal.Decimal `json:"drcPercent"` // dry rubber content, 0-100
	Status         BarrelStatus    `json:"status"`
	CollectedAt    time.Time       `json:"collectedAt"`
	ExpiryDate     time.Time       `json:"expiryDate"`
	Location       string          `json:"location,omitempty"`
	AuditFields
}

// DryRubberKg returns the estimated dry rubber weight of the barrel contents.
// Latex density is close enough to water that litres are treated as kg here,
// which is the convention used on the plant floor.
func (b Barrel) DryRubberKg() decimal.Decimal {
	return b.VolumeLitres.Mul(b.DRCPercent).Div(decimal.NewFromInt(100))
}

// ValueAt prices the barrel's dry rubber content against a per-100kg rate.
func (b Barrel) ValueAt(ratePer100Kg decimal.Decimal) decimal.Decimal {
	return b.DryRubberKg().Mul(ratePer100Kg).Div(decimal.NewFromInt(100))
}
