package services

import (
	"context"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/dto"
)

// ScheduleEntryReaderSvc defines read operations for recurring entry data
type ScheduleEntryReaderSvc interface {
	// GetScheduleEntryByID retrieves a specific entry owned by the user.
	GetScheduleEntryByID(ctx context.Context, entryID string, userID string) (*domain.ScheduleEntry, error)

	// ListScheduleEntries retrieves the user's entries.
	ListScheduleEntries(ctx context.Context, userID string, includeInactive bool) ([]domain.ScheduleEntry, error)
}

// ScheduleEntryWriterSvc defines write operations for recurring entry data
type ScheduleEntryWriterSvc interface {
	// CreateScheduleEntry persists a new recurring entry for the user.
	CreateScheduleEntry(ctx context.Context, req dto.CreateScheduleEntryRequest, userID string) (*domain.ScheduleEntry, error)

	// UpdateScheduleEntry updates an existing entry's details.
	UpdateScheduleEntry(ctx context.Context, entryID string, req dto.UpdateScheduleEntryRequest, userID string) (*domain.ScheduleEntry, error)

	// DeactivateScheduleEntry marks an entry as inactive.
	DeactivateScheduleEntry(ctx context.Context, entryID string, userID string) error
}

// ScheduleEntrySvcFacade combines all recurring-entry service interfaces
type ScheduleEntrySvcFacade interface {
	ScheduleEntryReaderSvc
	ScheduleEntryWriterSvc
}
