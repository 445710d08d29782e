package pgsql

import (
	"context"
	"database/sql"
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

const scheduleEntryColumns = `entry_id, user_id, name, description, entry_type, amount, currency_code, cadence, next_occurrence, lead_time_days, end_mode, end_date, max_occurrences, account_id, category_id, allocation_id, is_autopay, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxScheduleEntryRepository struct {
	BaseRepository
}

// newPgxScheduleEntryRepository creates a new repository for recurring entry data.
func newPgxScheduleEntryRepository(pool *pgxpool.Pool) portsrepo.ScheduleEntryRepositoryFacade {
	return &PgxScheduleEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduleEntryRepositoryFacade = (*PgxScheduleEntryRepository)(nil)

func scanScheduleEntry(row pgx.Row) (models.ScheduleEntry, error) {
	var m models.ScheduleEntry
	var accountID, categoryID, allocationID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.EntryType,
		&m.Amount,
		&m.CurrencyCode,
		&m.Cadence,
		&m.NextOccurrence,
		&m.LeadTimeDays,
		&m.EndMode,
		&m.EndDate,
		&m.MaxOccurrences,
		&accountID,
		&categoryID,
		&allocationID,
		&m.IsAutopay,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	m.AccountID = accountID.String
	m.CategoryID = categoryID.String
	m.AllocationID = allocationID.String
	return m, nil
}

// SaveScheduleEntry inserts a new recurring entry.
func (r *PgxScheduleEntryRepository) SaveScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) error {
	m := mapping.ToModelScheduleEntry(entry)

	query := `
		INSERT INTO schedule_entries (` + scheduleEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.Name,
		m.Description,
		m.EntryType,
		m.Amount,
		m.CurrencyCode,
		m.Cadence,
		m.NextOccurrence,
		m.LeadTimeDays,
		m.EndMode,
		m.EndDate,
		m.MaxOccurrences,
		nullable(m.AccountID),
		nullable(m.CategoryID),
		nullable(m.AllocationID),
		m.IsAutopay,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: schedule entry with ID %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to save schedule entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindScheduleEntryByID retrieves a recurring entry by its ID.
func (r *PgxScheduleEntryRepository) FindScheduleEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries WHERE entry_id = $1;`

	m, err := scanScheduleEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find schedule entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainScheduleEntry(m)
	return &entry, nil
}

// ListScheduleEntries retrieves a user's recurring entries ordered by next
// occurrence. Inactive entries are included only when requested.
func (r *PgxScheduleEntryRepository) ListScheduleEntries(ctx context.Context, userID string, includeInactive bool) ([]domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY next_occurrence, name;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []models.ScheduleEntry{}
	for rows.Next() {
		m, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry row for user %s: %w", userID, err)
		}
		entries = append(entries, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating schedule entry rows for user %s: %w", userID, rows.Err())
	}

	return mapping.ToDomainScheduleEntrySlice(entries), nil
}

// UpdateScheduleEntry updates an existing recurring entry.
func (r *PgxScheduleEntryRepository) UpdateScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) error {
	m := mapping.ToModelScheduleEntry(entry)

	query := `
		UPDATE schedule_entries
		SET name = $2, description = $3, amount = $4, cadence = $5, next_occurrence = $6, lead_time_days = $7, end_mode = $8, end_date = $9, max_occurrences = $10, account_id = $11, category_id = $12, allocation_id = $13, is_autopay = $14, is_active = $15, last_updated_at = $16, last_updated_by = $17
		WHERE entry_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.Name,
		m.Description,
		m.Amount,
		m.Cadence,
		m.NextOccurrence,
		m.LeadTimeDays,
		m.EndMode,
		m.EndDate,
		m.MaxOccurrences,
		nullable(m.AccountID),
		nullable(m.CategoryID),
		nullable(m.AllocationID),
		m.IsAutopay,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update schedule entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateScheduleEntry marks a recurring entry as inactive.
func (r *PgxScheduleEntryRepository) DeactivateScheduleEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	query := `
		UPDATE schedule_entries
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate schedule entry %s: %w", entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindScheduleEntryByID(ctx, entryID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check schedule entry status after deactivation attempt for %s: %w", entryID, findErr)
		}
		return apperrors.ErrValidation
	}

	return nil
}
