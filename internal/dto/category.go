package dto

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	IsExpense   *bool  `json:"isExpense"` // Defaults to true when omitted
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	IsExpense   *bool   `json:"isExpense"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string    `json:"categoryID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Color         string    `json:"color"`
	IsExpense     bool      `json:"isExpense"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		Description:   cat.Description,
		Color:         cat.Color,
		IsExpense:     cat.IsExpense,
		IsActive:      cat.IsActive,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
