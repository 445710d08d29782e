package repositories

import (
	"context"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all active categories for a user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeactivateCategory marks a category as inactive.
	DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
