package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a rate value came from.
type RateSource string

const (
	RateSourceManual         RateSource = "manual"
	RateSourceRubberBoard    RateSource = "rubber_board"
	RateSourceCacheLastKnown RateSource = "cache_last_known"
)

// RateStatus is the publication state of a rate record.
type RateStatus string

const (
	RateStatusPending   RateStatus = "pending"
	RateStatusPublished RateStatus = "published"
)

// DefaultProduct is the product tracked by the scheduler when none is named.
const DefaultProduct = "latex60"

// knownProducts are the price products the plant tracks.
var knownProducts = map[string]bool{
	"latex60": true,
	"rss4":    true,
	"rss5":    true,
	"isnr20":  true,
}

// IsKnownProduct reports whether p is a tracked product name.
func IsKnownProduct(p string) bool {
	return knownProducts[p]
}

// Rate is a company/market rate for a product on a given effective date.
// Records are never deleted; the authoritative published rate for a product
// is the most recent published record by EffectiveDate at read time.
type Rate struct {
	RateID        string          `json:"rateID"` // Primary Key (UUID)
	Product       string          `json:"product"`
	CompanyRate   decimal.Decimal `json:"companyRate"`
	MarketRate    decimal.Decimal `json:"marketRate"`
	Unit          string          `json:"unit"` // free text, e.g. "INR/100kg"
	Source        RateSource      `json:"source"`
	Status        RateStatus      `json:"status"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	FetchedFrom   string          `json:"fetchedFrom,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	VerifiedBy    string          `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time      `json:"verifiedAt,omitempty"`
	AuditFields
}

// FetchedRate is the transient result of a scrape or fallback resolution.
// It carries no identity and is only persisted via the daily upsert.
type FetchedRate struct {
	Product     string          `json:"product"`
	Rate        decimal.Decimal `json:"rate"`
	Source      RateSource      `json:"source"`
	FetchedFrom string          `json:"fetchedFrom"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// RateHistoryEntry is one append-only audit row recorded on every store write.
type RateHistoryEntry struct {
	EntryID       string          `json:"entryID"`
	Product       string          `json:"product"`
	CompanyRate   decimal.Decimal `json:"companyRate"`
	MarketRate    decimal.Decimal `json:"marketRate"`
	Source        RateSource      `json:"source"`
	FetchedFrom   string          `json:"fetchedFrom,omitempty"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	RecordedAt    time.Time       `json:"recordedAt"`
}
