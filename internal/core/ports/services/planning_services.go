package services

import (
	"context"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/planning"
)

// PlanningSvcFacade exposes the projection and aggregation engine over a
// user's stored data. Every method takes the evaluation instant explicitly so
// results are reproducible.
type PlanningSvcFacade interface {
	// GetPeriodSummary aggregates realized and projected activity over
	// [rangeStart, rangeEnd] for one reporting currency.
	GetPeriodSummary(ctx context.Context, userID string, rangeStart, rangeEnd time.Time, currencyCode string) (*planning.PeriodSummary, error)

	// GetReminders derives lead-time-adjusted reminders for the next 30 days.
	GetReminders(ctx context.Context, userID string, now time.Time) ([]planning.Reminder, error)

	// GetUpcomingPayments flags this month's remaining expense occurrences the
	// linked accounts cannot absorb.
	GetUpcomingPayments(ctx context.Context, userID string, now time.Time) ([]planning.UpcomingPayment, error)

	// GetEnvelopeUsages computes usage and progress for the user's envelopes.
	GetEnvelopeUsages(ctx context.Context, userID string) ([]planning.EnvelopeUsage, error)

	// GetCategoryInsights ranks the user's top expense categories over
	// [rangeStart, rangeEnd].
	GetCategoryInsights(ctx context.Context, userID string, rangeStart, rangeEnd time.Time) ([]planning.CategoryInsight, error)
}
