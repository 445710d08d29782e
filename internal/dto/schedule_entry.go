package dto

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateScheduleEntryRequest defines the data needed to create a recurring entry.
type CreateScheduleEntryRequest struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description"`
	EntryType      domain.EntryType `json:"entryType" binding:"required,oneof=income expense"`
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode   string           `json:"currencyCode" binding:"required,len=3"`
	Cadence        domain.Cadence   `json:"cadence" binding:"required,oneof=monthly quarterly semi_annual annual"`
	NextOccurrence time.Time        `json:"nextOccurrence" binding:"required"`
	LeadTimeDays   int              `json:"leadTimeDays" binding:"omitempty,min=0"`
	EndMode        domain.EndMode   `json:"endMode" binding:"omitempty,oneof=indefinite on_date after_occurrences"`
	EndDate        *time.Time       `json:"endDate"`
	MaxOccurrences int              `json:"maxOccurrences" binding:"omitempty,min=1"`

	AccountID    *string `json:"accountID"`
	CategoryID   *string `json:"categoryID"`
	AllocationID *string `json:"allocationID"`

	IsAutopay bool `json:"isAutopay"`
}

// UpdateScheduleEntryRequest defines the data allowed for updating a recurring entry.
type UpdateScheduleEntryRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Amount         *decimal.Decimal `json:"amount"`
	Cadence        *domain.Cadence  `json:"cadence" binding:"omitempty,oneof=monthly quarterly semi_annual annual"`
	NextOccurrence *time.Time       `json:"nextOccurrence"`
	LeadTimeDays   *int             `json:"leadTimeDays" binding:"omitempty,min=0"`
	EndMode        *domain.EndMode  `json:"endMode" binding:"omitempty,oneof=indefinite on_date after_occurrences"`
	EndDate        *time.Time       `json:"endDate"`
	MaxOccurrences *int             `json:"maxOccurrences" binding:"omitempty,min=1"`
	AccountID      *string          `json:"accountID"`
	CategoryID     *string          `json:"categoryID"`
	AllocationID   *string          `json:"allocationID"`
	IsAutopay      *bool            `json:"isAutopay"`
	IsActive       *bool            `json:"isActive"`
}

// ScheduleEntryResponse defines the data returned for a recurring entry.
type ScheduleEntryResponse struct {
	EntryID        string           `json:"entryID"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	EntryType      domain.EntryType `json:"entryType"`
	Amount         decimal.Decimal  `json:"amount"`
	CurrencyCode   string           `json:"currencyCode"`
	Cadence        domain.Cadence   `json:"cadence"`
	NextOccurrence time.Time        `json:"nextOccurrence"`
	LeadTimeDays   int              `json:"leadTimeDays"`
	EndMode        domain.EndMode   `json:"endMode"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
	MaxOccurrences int              `json:"maxOccurrences,omitempty"`
	AccountID      string           `json:"accountID,omitempty"`
	CategoryID     string           `json:"categoryID,omitempty"`
	AllocationID   string           `json:"allocationID,omitempty"`
	IsAutopay      bool             `json:"isAutopay"`
	IsActive       bool             `json:"isActive"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
}

// ToScheduleEntryResponse converts a domain.ScheduleEntry to ScheduleEntryResponse DTO
func ToScheduleEntryResponse(entry *domain.ScheduleEntry) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		EntryID:        entry.EntryID,
		Name:           entry.Name,
		Description:    entry.Description,
		EntryType:      entry.EntryType,
		Amount:         entry.Amount,
		CurrencyCode:   entry.CurrencyCode,
		Cadence:        entry.Cadence,
		NextOccurrence: entry.NextOccurrence,
		LeadTimeDays:   entry.LeadTimeDays,
		EndMode:        entry.EndMode,
		EndDate:        entry.EndDate,
		MaxOccurrences: entry.MaxOccurrences,
		AccountID:      entry.AccountID,
		CategoryID:     entry.CategoryID,
		AllocationID:   entry.AllocationID,
		IsAutopay:      entry.IsAutopay,
		IsActive:       entry.IsActive,
		CreatedAt:      entry.CreatedAt,
		LastUpdatedAt:  entry.LastUpdatedAt,
	}
}

// ToListScheduleEntryResponse converts a slice of domain.ScheduleEntry to a slice of ScheduleEntryResponse DTOs
func ToListScheduleEntryResponse(entries []domain.ScheduleEntry) []ScheduleEntryResponse {
	res := make([]ScheduleEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToScheduleEntryResponse(&entries[i])
	}
	return res
}

// ListScheduleEntriesResponse wraps the list of recurring entries.
type ListScheduleEntriesResponse struct {
	Entries []ScheduleEntryResponse `json:"entries"`
}
