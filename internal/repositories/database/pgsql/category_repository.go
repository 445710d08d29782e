package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	"github.com/peraplan/peraplan_backend/internal/models"
	"github.com/peraplan/peraplan_backend/internal/utils/mapping"
)

const categoryColumns = `category_id, user_id, name, description, color, is_expense, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.Color,
		&m.IsExpense,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.Description,
		m.Color,
		m.IsExpense,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves all active categories for a user, ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_active = TRUE AND user_id = $1
		ORDER BY name;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row for user %s: %w", userID, err)
		}
		categories = append(categories, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows for user %s: %w", userID, rows.Err())
	}

	return mapping.ToDomainCategorySlice(categories), nil
}

// UpdateCategory updates an existing category's editable fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, description = $3, color = $4, is_expense = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE category_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Description,
		m.Color,
		m.IsExpense,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update category %s: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCategory marks a category as inactive.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE category_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, categoryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate category %s: %w", categoryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindCategoryByID(ctx, categoryID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check category status after deactivation attempt for %s: %w", categoryID, findErr)
		}
		return apperrors.ErrValidation
	}

	return nil
}
