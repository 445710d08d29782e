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
	"github.com/shopspring/decimal"
)

const allocationColumns = `allocation_id, user_id, account_id, name, allocation_type, description, target_amount, current_amount, monthly_target, currency_code, target_date, period_frequency, period_start, period_end, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for allocation data.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepositoryFacade {
	return &PgxAllocationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AllocationRepositoryFacade = (*PgxAllocationRepository)(nil)

func scanAllocation(row pgx.Row) (models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.UserID,
		&m.AccountID,
		&m.Name,
		&m.AllocationType,
		&m.Description,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.MonthlyTarget,
		&m.CurrencyCode,
		&m.TargetDate,
		&m.PeriodFrequency,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAllocation inserts a new allocation.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := mapping.ToModelAllocation(allocation)

	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AllocationID,
		m.UserID,
		m.AccountID,
		m.Name,
		m.AllocationType,
		m.Description,
		m.TargetAmount,
		m.CurrentAmount,
		m.MonthlyTarget,
		m.CurrencyCode,
		m.TargetDate,
		m.PeriodFrequency,
		m.PeriodStart,
		m.PeriodEnd,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: allocation with ID %s already exists", apperrors.ErrDuplicate, m.AllocationID)
		}
		return fmt.Errorf("failed to save allocation %s: %w", m.AllocationID, err)
	}
	return nil
}

// FindAllocationByID retrieves an allocation by its ID.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = $1;`

	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation by ID %s: %w", allocationID, err)
	}

	allocation := mapping.ToDomainAllocation(m)
	return &allocation, nil
}

// ListAllocations retrieves all active allocations for a user, ordered by name.
func (r *PgxAllocationRepository) ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE is_active = TRUE AND user_id = $1
		ORDER BY name;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for user %s: %w", userID, err)
	}
	defer rows.Close()

	allocations := []models.Allocation{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row for user %s: %w", userID, err)
		}
		allocations = append(allocations, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allocation rows for user %s: %w", userID, rows.Err())
	}

	return mapping.ToDomainAllocationSlice(allocations), nil
}

// UpdateAllocation updates an existing allocation.
func (r *PgxAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := mapping.ToModelAllocation(allocation)

	query := `
		UPDATE allocations
		SET name = $2, description = $3, target_amount = $4, current_amount = $5, monthly_target = $6, target_date = $7, period_frequency = $8, period_start = $9, period_end = $10, is_active = $11, last_updated_at = $12, last_updated_by = $13
		WHERE allocation_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AllocationID,
		m.Name,
		m.Description,
		m.TargetAmount,
		m.CurrentAmount,
		m.MonthlyTarget,
		m.TargetDate,
		m.PeriodFrequency,
		m.PeriodStart,
		m.PeriodEnd,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update allocation %s: %w", m.AllocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustAllocationAmount applies a delta to an allocation's current amount.
func (r *PgxAllocationRepository) AdjustAllocationAmount(ctx context.Context, allocationID string, delta decimal.Decimal, userID string, now time.Time) error {
	if delta.IsZero() {
		return nil
	}

	query := `
		UPDATE allocations
		SET current_amount = COALESCE(current_amount, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE allocation_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, allocationID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust allocation %s amount: %w", allocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAllocation marks an allocation as inactive.
func (r *PgxAllocationRepository) DeactivateAllocation(ctx context.Context, allocationID string, userID string, now time.Time) error {
	query := `
		UPDATE allocations
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE allocation_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, allocationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate allocation %s: %w", allocationID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindAllocationByID(ctx, allocationID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check allocation status after deactivation attempt for %s: %w", allocationID, findErr)
		}
		return apperrors.ErrValidation
	}

	return nil
}
