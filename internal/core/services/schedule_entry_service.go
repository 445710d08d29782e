package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
)

// scheduleEntryService implements portssvc.ScheduleEntrySvcFacade.
type scheduleEntryService struct {
	BaseService
	entryRepo portsrepo.ScheduleEntryRepositoryFacade
}

// NewScheduleEntryService creates a new schedule entry service.
func NewScheduleEntryService(repo portsrepo.ScheduleEntryRepositoryFacade) portssvc.ScheduleEntrySvcFacade {
	return &scheduleEntryService{entryRepo: repo}
}

// validateEndMode enforces the termination invariants: on_date requires an end
// date, after_occurrences requires a positive cap, and the other modes must
// not carry leftover termination fields.
func validateEndMode(entry *domain.ScheduleEntry) error {
	switch entry.EndMode {
	case domain.EndIndefinite, "":
		entry.EndMode = domain.EndIndefinite
		entry.EndDate = nil
		entry.MaxOccurrences = 0
	case domain.EndOnDate:
		if entry.EndDate == nil {
			return fmt.Errorf("%w: endDate is required when endMode is on_date", apperrors.ErrValidation)
		}
		entry.MaxOccurrences = 0
	case domain.EndAfterOccurrences:
		if entry.MaxOccurrences < 1 {
			return fmt.Errorf("%w: maxOccurrences must be at least 1 when endMode is after_occurrences", apperrors.ErrValidation)
		}
		entry.EndDate = nil
	default:
		return fmt.Errorf("%w: unknown endMode %q", apperrors.ErrValidation, entry.EndMode)
	}
	return nil
}

func (s *scheduleEntryService) findOwnedEntry(ctx context.Context, entryID, userID string) (*domain.ScheduleEntry, error) {
	entry, err := s.entryRepo.FindScheduleEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find schedule entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}

func (s *scheduleEntryService) CreateScheduleEntry(ctx context.Context, req dto.CreateScheduleEntryRequest, userID string) (*domain.ScheduleEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	entry := domain.ScheduleEntry{
		EntryID:        uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Description:    req.Description,
		EntryType:      req.EntryType,
		Amount:         req.Amount,
		CurrencyCode:   req.CurrencyCode,
		Cadence:        req.Cadence,
		NextOccurrence: req.NextOccurrence,
		LeadTimeDays:   req.LeadTimeDays,
		EndMode:        req.EndMode,
		EndDate:        req.EndDate,
		MaxOccurrences: req.MaxOccurrences,
		IsAutopay:      req.IsAutopay,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.AccountID != nil {
		entry.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		entry.CategoryID = *req.CategoryID
	}
	if req.AllocationID != nil {
		entry.AllocationID = *req.AllocationID
	}

	if err := validateEndMode(&entry); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveScheduleEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save schedule entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Schedule entry created", slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

func (s *scheduleEntryService) GetScheduleEntryByID(ctx context.Context, entryID string, userID string) (*domain.ScheduleEntry, error) {
	return s.findOwnedEntry(ctx, entryID, userID)
}

func (s *scheduleEntryService) ListScheduleEntries(ctx context.Context, userID string, includeInactive bool) ([]domain.ScheduleEntry, error) {
	entries, err := s.entryRepo.ListScheduleEntries(ctx, userID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list schedule entries")
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	if entries == nil {
		entries = []domain.ScheduleEntry{}
	}
	return entries, nil
}

func (s *scheduleEntryService) UpdateScheduleEntry(ctx context.Context, entryID string, req dto.UpdateScheduleEntryRequest, userID string) (*domain.ScheduleEntry, error) {
	entry, err := s.findOwnedEntry(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		entry.Amount = *req.Amount
	}
	if req.Cadence != nil {
		entry.Cadence = *req.Cadence
	}
	if req.NextOccurrence != nil {
		entry.NextOccurrence = *req.NextOccurrence
	}
	if req.LeadTimeDays != nil {
		entry.LeadTimeDays = *req.LeadTimeDays
	}
	if req.EndMode != nil {
		entry.EndMode = *req.EndMode
	}
	if req.EndDate != nil {
		entry.EndDate = req.EndDate
	}
	if req.MaxOccurrences != nil {
		entry.MaxOccurrences = *req.MaxOccurrences
	}
	if req.AccountID != nil {
		entry.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		entry.CategoryID = *req.CategoryID
	}
	if req.AllocationID != nil {
		entry.AllocationID = *req.AllocationID
	}
	if req.IsAutopay != nil {
		entry.IsAutopay = *req.IsAutopay
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := validateEndMode(entry); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateScheduleEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update schedule entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Schedule entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

func (s *scheduleEntryService) DeactivateScheduleEntry(ctx context.Context, entryID string, userID string) error {
	if _, err := s.findOwnedEntry(ctx, entryID, userID); err != nil {
		return err
	}

	if err := s.entryRepo.DeactivateScheduleEntry(ctx, entryID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate schedule entry", slog.String("entry_id", entryID))
		}
		return err
	}

	s.LogInfo(ctx, "Schedule entry deactivated", slog.String("entry_id", entryID))
	return nil
}
