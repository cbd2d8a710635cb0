package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// ProposeRateRequest defines the payload for manually proposing a rate.
type ProposeRateRequest struct {
	CompanyRate   decimal.Decimal `json:"companyRate" binding:"required"`
	MarketRate    decimal.Decimal `json:"marketRate" binding:"required"`
	Product       string          `json:"product" binding:"omitempty,product"`
	Unit          string          `json:"unit" binding:"omitempty,max=32"`
	EffectiveDate *time.Time      `json:"effectiveDate,omitempty"`
	Notes         string          `json:"notes" binding:"omitempty,max=500"`
}

// UpdateRateRequest defines the payload for editing an existing rate.
// Any edit resets the record to pending.
type UpdateRateRequest struct {
	CompanyRate   *decimal.Decimal `json:"companyRate,omitempty"`
	MarketRate    *decimal.Decimal `json:"marketRate,omitempty"`
	Unit          *string          `json:"unit,omitempty" binding:"omitempty,max=32"`
	EffectiveDate *time.Time       `json:"effectiveDate,omitempty"`
	Notes         *string          `json:"notes,omitempty" binding:"omitempty,max=500"`
}

// RateResponse defines the API shape of a rate record.
type RateResponse struct {
	RateID        string          `json:"rateID"`
	Product       string          `json:"product"`
	CompanyRate   decimal.Decimal `json:"companyRate"`
	MarketRate    decimal.Decimal `json:"marketRate"`
	Unit          string          `json:"unit"`
	Source        string          `json:"source"`
	Status        string          `json:"status"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	FetchedFrom   string          `json:"fetchedFrom,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	VerifiedBy    string          `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time      `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToRateResponse converts a domain.Rate to RateResponse
func ToRateResponse(rate *domain.Rate) RateResponse {
	return RateResponse{
		RateID:        rate.RateID,
		Product:       rate.Product,
		CompanyRate:   rate.CompanyRate,
		MarketRate:    rate.MarketRate,
		Unit:          rate.Unit,
		Source:        string(rate.Source),
		Status:        string(rate.Status),
		EffectiveDate: rate.EffectiveDate,
		FetchedFrom:   rate.FetchedFrom,
		Notes:         rate.Notes,
		VerifiedBy:    rate.VerifiedBy,
		VerifiedAt:    rate.VerifiedAt,
		CreatedAt:     rate.CreatedAt,
		LastUpdatedAt: rate.LastUpdatedAt,
	}
}

// RateHistoryEntryResponse is one append-only history row.
type RateHistoryEntryResponse struct {
	EntryID       string          `json:"entryID"`
	Product       string          `json:"product"`
	CompanyRate   decimal.Decimal `json:"companyRate"`
	MarketRate    decimal.Decimal `json:"marketRate"`
	Source        string          `json:"source"`
	FetchedFrom   string          `json:"fetchedFrom,omitempty"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	RecordedAt    time.Time       `json:"recordedAt"`
}

// RateHistoryResponse is a cursor-paginated page of history rows.
type RateHistoryResponse struct {
	Entries   []RateHistoryEntryResponse `json:"entries"`
	NextToken string                     `json:"nextToken,omitempty"`
}

// ToRateHistoryEntryResponse converts a domain history entry
func ToRateHistoryEntryResponse(e domain.RateHistoryEntry) RateHistoryEntryResponse {
	return RateHistoryEntryResponse{
		EntryID:       e.EntryID,
		Product:       e.Product,
		CompanyRate:   e.CompanyRate,
		MarketRate:    e.MarketRate,
		Source:        string(e.Source),
		FetchedFrom:   e.FetchedFrom,
		EffectiveDate: e.EffectiveDate,
		RecordedAt:    e.RecordedAt,
	}
}

// LiveRateResponse is the result of an on-demand scrape; it never touches the store.
type LiveRateResponse struct {
	Product     string          `json:"product"`
	Rate        decimal.Decimal `json:"rate"`
	FetchedFrom string          `json:"fetchedFrom"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// SchedulerStatusResponse mirrors the scheduler's introspection state.
type SchedulerStatusResponse struct {
	IsRunning     bool       `json:"isRunning"`
	LastFetchTime *time.Time `json:"lastFetchTime,omitempty"`
	FetchCount    int64      `json:"fetchCount"`
}
