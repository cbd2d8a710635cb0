package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Rate is a row of the rates table.
type Rate struct {
	RateID        string          `db:"rate_id"`
	Product       string          `db:"product"`
	CompanyRate   decimal.Decimal `db:"company_rate"`
	MarketRate    decimal.Decimal `db:"market_rate"`
	Unit          string          `db:"unit"`
	Source        string          `db:"source"`
	Status        string          `db:"status"`
	EffectiveDate time.Time       `db:"effective_date"`
	FetchedFrom   sql.NullString  `db:"fetched_from"`
	Notes         sql.NullString  `db:"notes"`
	VerifiedBy    sql.NullString  `db:"verified_by"`
	VerifiedAt    sql.NullTime    `db:"verified_at"`
	AuditFields
}

// RateHistoryEntry is a row of the append-only rate_history table.
type RateHistoryEntry struct {
	EntryID       string          `db:"entry_id"`
	Product       string          `db:"product"`
	CompanyRate   decimal.Decimal `db:"company_rate"`
	MarketRate    decimal.Decimal `db:"market_rate"`
	Source        string          `db:"source"`
	FetchedFrom   sql.NullString  `db:"fetched_from"`
	EffectiveDate time.Time       `db:"effective_date"`
	RecordedAt    time.Time       `db:"recorded_at"`
}
