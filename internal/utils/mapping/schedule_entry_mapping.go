package mapping

import (
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/models"
)

// ToModelScheduleEntry converts a domain ScheduleEntry to a model ScheduleEntry
func ToModelScheduleEntry(d domain.ScheduleEntry) models.ScheduleEntry {
	return models.ScheduleEntry{
		EntryID:        d.EntryID,
		UserID:         d.UserID,
		Name:           d.Name,
		Description:    d.Description,
		EntryType:      models.EntryType(d.EntryType),
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
		Cadence:        models.Cadence(d.Cadence),
		NextOccurrence: d.NextOccurrence,
		LeadTimeDays:   d.LeadTimeDays,
		EndMode:        models.EndMode(d.EndMode),
		EndDate:        d.EndDate,
		MaxOccurrences: d.MaxOccurrences,
		AccountID:      d.AccountID,
		CategoryID:     d.CategoryID,
		AllocationID:   d.AllocationID,
		IsAutopay:      d.IsAutopay,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScheduleEntry converts a model ScheduleEntry to a domain ScheduleEntry
func ToDomainScheduleEntry(m models.ScheduleEntry) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		EntryID:        m.EntryID,
		UserID:         m.UserID,
		Name:           m.Name,
		Description:    m.Description,
		EntryType:      domain.EntryType(m.EntryType),
		Amount:         m.Amount,
		CurrencyCode:   m.CurrencyCode,
		Cadence:        domain.Cadence(m.Cadence),
		NextOccurrence: m.NextOccurrence,
		LeadTimeDays:   m.LeadTimeDays,
		EndMode:        domain.EndMode(m.EndMode),
		EndDate:        m.EndDate,
		MaxOccurrences: m.MaxOccurrences,
		AccountID:      m.AccountID,
		CategoryID:     m.CategoryID,
		AllocationID:   m.AllocationID,
		IsAutopay:      m.IsAutopay,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainScheduleEntrySlice converts a slice of model ScheduleEntries to a slice of domain ScheduleEntries
func ToDomainScheduleEntrySlice(ms []models.ScheduleEntry) []domain.ScheduleEntry {
	ds := make([]domain.ScheduleEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainScheduleEntry(m)
	}
	return ds
}
