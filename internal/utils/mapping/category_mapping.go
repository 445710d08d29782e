package mapping

import (
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		UserID:      d.UserID,
		Name:        d.Name,
		Description: d.Description,
		Color:       d.Color,
		IsExpense:   d.IsExpense,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		IsExpense:   m.IsExpense,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to a slice of domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
