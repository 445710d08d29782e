package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationType distinguishes the three envelope flavors: accumulating
// savings, per-period spending budgets, and dated goals.
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

// Allocation is a budget envelope or savings/goal target tied to an account.
// For budget allocations, CurrentAmount is the amount already spent inside
// [PeriodStart, PeriodEnd); for savings and goals it is accumulated progress.
// TargetAmount and MonthlyTarget are nil when unset, which matters for the
// envelope limit fallback (target_amount, else monthly_target, else none).
type Allocation struct {
	AllocationID   string          `json:"allocationID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`       // FK -> users.user_id (Not Null)
	AccountID      string          `json:"accountID"`    // FK -> accounts.account_id (Not Null)
	Name           string          `json:"name"`
	AllocationType AllocationType  `json:"allocationType"`
	Description    string          `json:"description"`

	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount decimal.Decimal  `json:"currentAmount"`
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget,omitempty"`
	CurrencyCode  string           `json:"currencyCode"`

	// Goal settings
	TargetDate *time.Time `json:"targetDate,omitempty"`

	// Budget period settings; only meaningful for AllocationBudget.
	PeriodFrequency PeriodFrequency `json:"periodFrequency,omitempty"`
	PeriodStart     *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd       *time.Time      `json:"periodEnd,omitempty"` // half-open, PeriodEnd > PeriodStart

	IsActive bool `json:"isActive"`
	AuditFields
}
