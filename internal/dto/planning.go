package dto

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/planning"
)

// PeriodSummaryParams defines query parameters for the period summary endpoint.
// When the range is omitted it defaults to the current calendar month.
type PeriodSummaryParams struct {
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	CurrencyCode string     `form:"currency" binding:"omitempty,len=3"`
}

// CategoryInsightsParams defines query parameters for the category insights endpoint.
type CategoryInsightsParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// RemindersResponse wraps the derived reminder list.
type RemindersResponse struct {
	Reminders []planning.Reminder `json:"reminders"`
}

// UpcomingPaymentsResponse wraps the flagged upcoming payments.
type UpcomingPaymentsResponse struct {
	Payments []planning.UpcomingPayment `json:"payments"`
}

// EnvelopeUsagesResponse wraps the envelope usage list.
type EnvelopeUsagesResponse struct {
	Envelopes []planning.EnvelopeUsage `json:"envelopes"`
}

// CategoryInsightsResponse wraps the ranked category insights.
type CategoryInsightsResponse struct {
	Insights []planning.CategoryInsight `json:"insights"`
}
