package repositories

import (
	"context"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// ScheduleEntryReader defines read operations for recurring entry data
type ScheduleEntryReader interface {
	// FindScheduleEntryByID retrieves a specific entry by its unique identifier.
	FindScheduleEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error)

	// ListScheduleEntries retrieves all entries for a user, active ones first.
	ListScheduleEntries(ctx context.Context, userID string, includeInactive bool) ([]domain.ScheduleEntry, error)
}

// ScheduleEntryWriter defines write operations for recurring entry data
type ScheduleEntryWriter interface {
	// SaveScheduleEntry persists a new entry.
	SaveScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) error

	// UpdateScheduleEntry updates an existing entry's details.
	UpdateScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) error

	// DeactivateScheduleEntry marks an entry as inactive.
	DeactivateScheduleEntry(ctx context.Context, entryID string, userID string, now time.Time) error
}

// ScheduleEntryRepositoryFacade combines all recurring-entry repository interfaces
type ScheduleEntryRepositoryFacade interface {
	ScheduleEntryReader
	ScheduleEntryWriter
}
