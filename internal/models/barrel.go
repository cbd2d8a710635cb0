package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Barrel is a row of the barrels table.
type Barrel struct {
	BarrelID       string          `db:"barrel_id"`
	Code           string          `db:"code"`
	CapacityLitres decimal.Decimal `db:"capacity_litres"`
	VolumeLitres   decimal.Decimal `db:"volume_litres"`
	DRCPercent     decimal.Decimal `db:"drc_percent"`
	Status         string          `db:"status"`
	CollectedAt    time.Time       `db:"collected_at"`
	ExpiryDate     time.Time       `db:"expiry_date"`
	Location       string          `db:"location"`
	AuditFields
}
