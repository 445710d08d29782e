package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a schedule entry: money in or money out.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// Cadence is the repetition unit of a schedule entry.
type Cadence string

const (
	CadenceMonthly    Cadence = "monthly"
	CadenceQuarterly  Cadence = "quarterly"
	CadenceSemiAnnual Cadence = "semi_annual"
	CadenceAnnual     Cadence = "annual"
)

// EndMode describes how a schedule entry terminates.
type EndMode string

const (
	EndIndefinite       EndMode = "indefinite"
	EndOnDate           EndMode = "on_date"
	EndAfterOccurrences EndMode = "after_occurrences"
)

// ScheduleEntry is a recurring income or expense template (subscription,
// paycheck, bill). NextOccurrence is the stored anchor for projection; the
// projection engine never advances it, every query recomputes from it.
// Invariants enforced at the service layer: EndOnDate requires EndDate,
// EndAfterOccurrences requires MaxOccurrences >= 1.
type ScheduleEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`  // FK -> users.user_id (Not Null)
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	EntryType      EntryType       `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	Cadence        Cadence         `json:"cadence"`
	NextOccurrence time.Time       `json:"nextOccurrence"`
	LeadTimeDays   int             `json:"leadTimeDays"` // >= 0
	EndMode        EndMode         `json:"endMode"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	MaxOccurrences int             `json:"maxOccurrences,omitempty"` // 0 unless EndMode is after_occurrences

	AccountID    string `json:"accountID,omitempty"`    // Nullable link to the paying/receiving account
	CategoryID   string `json:"categoryID,omitempty"`   // Nullable link for spend categorization
	AllocationID string `json:"allocationID,omitempty"` // Nullable link to a budget envelope

	IsAutopay bool `json:"isAutopay"`
	IsActive  bool `json:"isActive"`
	AuditFields
}
