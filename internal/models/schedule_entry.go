package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a schedule entry.
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

// ScheduleEntry is a recurring income or expense template row.
type ScheduleEntry struct {
	EntryID        string          `db:"entry_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	EntryType      EntryType       `db:"entry_type"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	Cadence        Cadence         `db:"cadence"`
	NextOccurrence time.Time       `db:"next_occurrence"`
	LeadTimeDays   int             `db:"lead_time_days"`
	EndMode        EndMode         `db:"end_mode"`
	EndDate        *time.Time      `db:"end_date"`
	MaxOccurrences int             `db:"max_occurrences"`

	AccountID    string `db:"account_id"`    // Nullable
	CategoryID   string `db:"category_id"`   // Nullable
	AllocationID string `db:"allocation_id"` // Nullable

	IsAutopay bool `db:"is_autopay"`
	IsActive  bool `db:"is_active"`
	AuditFields
}
