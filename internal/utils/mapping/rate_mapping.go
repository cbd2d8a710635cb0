package mapping

import (
	"database/sql"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/models"
)

// ToModelRate converts a domain Rate to a model Rate
func ToModelRate(d domain.Rate) models.Rate {
	m := models.Rate{
		RateID:        d.RateID,
		Product:       d.Product,
		CompanyRate:   d.CompanyRate,
		MarketRate:    d.MarketRate,
		Unit:          d.Unit,
		Source:        string(d.Source),
		Status:        string(d.Status),
		EffectiveDate: d.EffectiveDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.FetchedFrom != "" {
		m.FetchedFrom = sql.NullString{String: d.FetchedFrom, Valid: true}
	}
	if d.Notes != "" {
		m.Notes = sql.NullString{String: d.Notes, Valid: true}
	}
	if d.VerifiedBy != "" {
		m.VerifiedBy = sql.NullString{String: d.VerifiedBy, Valid: true}
	}
	if d.VerifiedAt != nil {
		m.VerifiedAt = sql.NullTime{Time: *d.VerifiedAt, Valid: true}
	}
	return m
}

// ToDomainRate converts a model Rate to a domain Rate
func ToDomainRate(m models.Rate) domain.Rate {
	d := domain.Rate{
		RateID:        m.RateID,
		Product:       m.Product,
		CompanyRate:   m.CompanyRate,
		MarketRate:    m.MarketRate,
		Unit:          m.Unit,
		Source:        domain.RateSource(m.Source),
		Status:        domain.RateStatus(m.Status),
		EffectiveDate: m.EffectiveDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.FetchedFrom.Valid {
		d.FetchedFrom = m.FetchedFrom.String
	}
	if m.Notes.Valid {
		d.Notes = m.Notes.String
	}
	if m.VerifiedBy.Valid {
		d.VerifiedBy = m.VerifiedBy.String
	}
	if m.VerifiedAt.Valid {
		t := m.VerifiedAt.Time
		d.VerifiedAt = &t
	}
	return d
}

// ToDomainRateSlice converts a slice of model Rates to a slice of domain Rates
func ToDomainRateSlice(ms []models.Rate) []domain.Rate {
	ds := make([]domain.Rate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRate(m)
	}
	return ds
}

// ToDomainRateHistoryEntry converts a model history row to its domain form
func ToDomainRateHistoryEntry(m models.RateHistoryEntry) domain.RateHistoryEntry {
	d := domain.RateHistoryEntry{
		EntryID:       m.EntryID,
		Product:       m.Product,
		CompanyRate:   m.CompanyRate,
		MarketRate:    m.MarketRate,
		Source:        domain.RateSource(m.Source),
		EffectiveDate: m.EffectiveDate,
		RecordedAt:    m.RecordedAt,
	}
	if m.FetchedFrom.Valid {
		d.FetchedFrom = m.FetchedFrom.String
	}
	return d
}
