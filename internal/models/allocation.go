package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationType distinguishes savings, budget, and goal envelopes.
type AllocationType string

const (
	AllocationSavings AllocationType = "savings"
	AllocationBudget  AllocationType = "budget"
	AllocationGoal    AllocationType = "goal"
)

// PeriodFrequency is the reset cadence of a budget-type allocation.
type PeriodFrequency string

const (
	PeriodDaily     PeriodFrequency = "daily"
	PeriodWeekly    PeriodFrequency = "weekly"
	PeriodMonthly   PeriodFrequency = "monthly"
	PeriodQuarterly PeriodFrequency = "quarterly"
)

// Allocation is a budget envelope or savings/goal target row.
type Allocation struct {
	AllocationID   string         `db:"allocation_id"`
	UserID         string         `db:"user_id"`
	AccountID      string         `db:"account_id"`
	Name           string         `db:"name"`
	AllocationType AllocationType `db:"allocation_type"`
	Description    string         `db:"description"`

	TargetAmount  *decimal.Decimal `db:"target_amount"`  // Nullable
	CurrentAmount decimal.Decimal  `db:"current_amount"`
	MonthlyTarget *decimal.Decimal `db:"monthly_target"` // Nullable
	CurrencyCode  string           `db:"currency_code"`

	TargetDate *time.Time `db:"target_date"` // Nullable

	PeriodFrequency PeriodFrequency `db:"period_frequency"`
	PeriodStart     *time.Time      `db:"period_start"` // Nullable
	PeriodEnd       *time.Time      `db:"period_end"`   // Nullable

	IsActive bool `db:"is_active"`
	AuditFields
}
