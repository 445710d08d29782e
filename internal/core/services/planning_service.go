package services

import (
	"context"
	"fmt"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/planning"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
)

// snapshotAccountLimit bounds how many accounts a snapshot loads. Personal
// datasets stay far below this.
const snapshotAccountLimit = 500

// planningService implements portssvc.PlanningSvcFacade by loading a user's
// data into an in-memory snapshot and delegating to the planning package.
type planningService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewPlanningService creates a new planning service.
func NewPlanningService(repos portsrepo.RepositoryProvider) portssvc.PlanningSvcFacade {
	return &planningService{repos: repos}
}

// loadSnapshot assembles the read-only input for the projection engine.
// Transactions are loaded for [from, to] only; the other collections are
// small and loaded whole.
func (s *planningService) loadSnapshot(ctx context.Context, userID string, from, to time.Time) (planning.Snapshot, error) {
	var snap planning.Snapshot

	accounts, err := s.repos.AccountRepo.ListAccounts(ctx, userID, snapshotAccountLimit, 0)
	if err != nil {
		return snap, fmt.Errorf("failed to load accounts for snapshot: %w", err)
	}
	categories, err := s.repos.CategoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return snap, fmt.Errorf("failed to load categories for snapshot: %w", err)
	}
	entries, err := s.repos.ScheduleEntryRepo.ListScheduleEntries(ctx, userID, false)
	if err != nil {
		return snap, fmt.Errorf("failed to load schedule entries for snapshot: %w", err)
	}
	allocations, err := s.repos.AllocationRepo.ListAllocations(ctx, userID)
	if err != nil {
		return snap, fmt.Errorf("failed to load allocations for snapshot: %w", err)
	}
	transactions, err := s.repos.TransactionRepo.ListTransactionsInRange(ctx, userID, from, to)
	if err != nil {
		return snap, fmt.Errorf("failed to load transactions for snapshot: %w", err)
	}

	snap.Accounts = accounts
	snap.Categories = categories
	snap.Entries = entries
	snap.Allocations = allocations
	snap.Transactions = transactions
	return snap, nil
}

func (s *planningService) GetPeriodSummary(ctx context.Context, userID string, rangeStart, rangeEnd time.Time, currencyCode string) (*planning.PeriodSummary, error) {
	snap, err := s.loadSnapshot(ctx, userID, rangeStart, rangeEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for period summary")
		return nil, err
	}
	summary := planning.Summarize(snap, rangeStart, rangeEnd, currencyCode)
	return &summary, nil
}

func (s *planningService) GetReminders(ctx context.Context, userID string, now time.Time) ([]planning.Reminder, error) {
	entries, err := s.repos.ScheduleEntryRepo.ListScheduleEntries(ctx, userID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load schedule entries for reminders")
		return nil, fmt.Errorf("failed to load schedule entries: %w", err)
	}
	reminders := planning.Reminders(entries, now)
	if reminders == nil {
		reminders = []planning.Reminder{}
	}
	return reminders, nil
}

func (s *planningService) GetUpcomingPayments(ctx context.Context, userID string, now time.Time) ([]planning.UpcomingPayment, error) {
	// The affordability check needs accounts and entries only.
	snap, err := s.loadSnapshot(ctx, userID, now, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for upcoming payments")
		return nil, err
	}
	payments := planning.UpcomingPayments(snap, now)
	if payments == nil {
		payments = []planning.UpcomingPayment{}
	}
	return payments, nil
}

func (s *planningService) GetEnvelopeUsages(ctx context.Context, userID string) ([]planning.EnvelopeUsage, error) {
	allocations, err := s.repos.AllocationRepo.ListAllocations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load allocations for envelope usage")
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}
	usages := planning.EnvelopeUsages(allocations)
	if usages == nil {
		usages = []planning.EnvelopeUsage{}
	}
	return usages, nil
}

func (s *planningService) GetCategoryInsights(ctx context.Context, userID string, rangeStart, rangeEnd time.Time) ([]planning.CategoryInsight, error) {
	snap, err := s.loadSnapshot(ctx, userID, rangeStart, rangeEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot for category insights")
		return nil, err
	}
	insights := planning.CategoryInsights(snap, rangeStart, rangeEnd)
	if insights == nil {
		insights = []planning.CategoryInsight{}
	}
	return insights, nil
}
