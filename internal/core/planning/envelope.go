package planning

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// maxDisplayPercentage caps the textual usage figure so runaway overspend
// reads as "999%" instead of an absurd number.
const maxDisplayPercentage = 999

// EnvelopeUsage is the derived spent/remaining view of one allocation.
//
// BarPercentage is clamped to [0,100] and drives progress-bar fill;
// DisplayPercentage is the real ratio capped at 999 and drives the textual
// figure. They are deliberately separate values.
type EnvelopeUsage struct {
	AllocationID      string                `json:"allocationID"`
	Name              string                `json:"name"`
	AllocationType    domain.AllocationType `json:"allocationType"`
	CurrencyCode      string                `json:"currencyCode"`
	Limit             decimal.Decimal       `json:"limit"`
	Spent             decimal.Decimal       `json:"spent"`
	Remaining         decimal.Decimal       `json:"remaining"`    // floored at zero for the headline figure
	RawRemaining      decimal.Decimal       `json:"rawRemaining"` // may be negative when over limit
	BarPercentage     float64               `json:"barPercentage"`
	DisplayPercentage float64               `json:"displayPercentage"`
	PeriodStart       *time.Time            `json:"periodStart,omitempty"`
	PeriodEnd         *time.Time            `json:"periodEnd,omitempty"`
}

// EnvelopeUsages derives usage for every active allocation that has a usable
// limit. Budget allocations take their spending limit from TargetAmount,
// falling back to MonthlyTarget; savings and goals measure progress against
// TargetAmount. Allocations with no positive limit are excluded since there is
// nothing to divide by.
func EnvelopeUsages(allocations []domain.Allocation) []EnvelopeUsage {
	var usages []EnvelopeUsage
	for _, alloc := range allocations {
		if !alloc.IsActive {
			continue
		}

		limit := allocationLimit(alloc)
		if limit.LessThanOrEqual(decimal.Zero) {
			continue
		}

		spent := alloc.CurrentAmount
		rawRemaining := limit.Sub(spent)
		remaining := rawRemaining
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		ratio, _ := spent.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
		usages = append(usages, EnvelopeUsage{
			AllocationID:      alloc.AllocationID,
			Name:              alloc.Name,
			AllocationType:    alloc.AllocationType,
			CurrencyCode:      alloc.CurrencyCode,
			Limit:             limit,
			Spent:             spent,
			Remaining:         remaining,
			RawRemaining:      rawRemaining,
			BarPercentage:     clampPercentage(ratio, 100),
			DisplayPercentage: clampPercentage(ratio, maxDisplayPercentage),
			PeriodStart:       alloc.PeriodStart,
			PeriodEnd:         alloc.PeriodEnd,
		})
	}
	return usages
}

func allocationLimit(alloc domain.Allocation) decimal.Decimal {
	if alloc.AllocationType == domain.AllocationBudget {
		if alloc.TargetAmount != nil {
			return *alloc.TargetAmount
		}
		if alloc.MonthlyTarget != nil {
			return *alloc.MonthlyTarget
		}
		return decimal.Zero
	}
	// Savings and goals measure progress against their target.
	if alloc.TargetAmount != nil {
		return *alloc.TargetAmount
	}
	return decimal.Zero
}

func clampPercentage(v float64, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
