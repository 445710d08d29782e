package mapping

import (
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/models"
)

// ToModelAllocation converts a domain Allocation to a model Allocation
func ToModelAllocation(d domain.Allocation) models.Allocation {
	return models.Allocation{
		AllocationID:    d.AllocationID,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		Name:            d.Name,
		AllocationType:  models.AllocationType(d.AllocationType),
		Description:     d.Description,
		TargetAmount:    d.TargetAmount,
		CurrentAmount:   d.CurrentAmount,
		MonthlyTarget:   d.MonthlyTarget,
		CurrencyCode:    d.CurrencyCode,
		TargetDate:      d.TargetDate,
		PeriodFrequency: models.PeriodFrequency(d.PeriodFrequency),
		PeriodStart:     d.PeriodStart,
		PeriodEnd:       d.PeriodEnd,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllocation converts a model Allocation to a domain Allocation
func ToDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID:    m.AllocationID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		Name:            m.Name,
		AllocationType:  domain.AllocationType(m.AllocationType),
		Description:     m.Description,
		TargetAmount:    m.TargetAmount,
		CurrentAmount:   m.CurrentAmount,
		MonthlyTarget:   m.MonthlyTarget,
		CurrencyCode:    m.CurrencyCode,
		TargetDate:      m.TargetDate,
		PeriodFrequency: domain.PeriodFrequency(m.PeriodFrequency),
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts a slice of model Allocations to a slice of domain Allocations
func ToDomainAllocationSlice(ms []models.Allocation) []domain.Allocation {
	ds := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}
