package planning_test

import (
	"testing"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riskSnapshot(balance int64, accountType domain.AccountType, creditLimit int64, amount int64, autopay bool) planning.Snapshot {
	return planning.Snapshot{
		Accounts: []domain.Account{{
			AccountID:    "acct-1",
			Name:         "Main wallet",
			AccountType:  accountType,
			Balance:      decimal.NewFromInt(balance),
			CreditLimit:  decimal.NewFromInt(creditLimit),
			CurrencyCode: "PHP",
			IsActive:     true,
		}},
		Entries: []domain.ScheduleEntry{{
			EntryID:        "entry-1",
			Name:           "Internet bill",
			EntryType:      domain.EntryExpense,
			Amount:         decimal.NewFromInt(amount),
			CurrencyCode:   "PHP",
			Cadence:        domain.CadenceMonthly,
			NextOccurrence: date(2025, time.June, 20),
			EndMode:        domain.EndIndefinite,
			AccountID:      "acct-1",
			IsAutopay:      autopay,
			IsActive:       true,
		}},
	}
}

func TestUpcomingPayments_AssetAccountOverdraftIsDanger(t *testing.T) {
	now := date(2025, time.June, 10)
	payments := planning.UpcomingPayments(riskSnapshot(100, domain.Checking, 0, 150, true), now)

	require.Len(t, payments, 1)
	assert.Equal(t, planning.StatusDanger, payments[0].Status, "danger overrides autopay")
	assert.True(t, payments[0].ProjectedBalance.Equal(decimal.NewFromInt(-50)))
}

func TestUpcomingPayments_AffordableSplitsByAutopay(t *testing.T) {
	now := date(2025, time.June, 10)

	autopay := planning.UpcomingPayments(riskSnapshot(100, domain.Checking, 0, 50, true), now)
	require.Len(t, autopay, 1)
	assert.Equal(t, planning.StatusAutopay, autopay[0].Status)

	manual := planning.UpcomingPayments(riskSnapshot(100, domain.Checking, 0, 50, false), now)
	require.Len(t, manual, 1)
	assert.Equal(t, planning.StatusManual, manual[0].Status)
}

func TestUpcomingPayments_CreditAccountChecksLimit(t *testing.T) {
	now := date(2025, time.June, 10)

	over := planning.UpcomingPayments(riskSnapshot(9500, domain.CreditAccount, 10000, 600, false), now)
	require.Len(t, over, 1)
	assert.Equal(t, planning.StatusDanger, over[0].Status)

	within := planning.UpcomingPayments(riskSnapshot(9500, domain.CreditAccount, 10000, 400, false), now)
	require.Len(t, within, 1)
	assert.Equal(t, planning.StatusManual, within[0].Status)
}

func TestUpcomingPayments_NoLinkedAccountListedButNeverDanger(t *testing.T) {
	now := date(2025, time.June, 10)
	snap := riskSnapshot(100, domain.Checking, 0, 99999, false)
	snap.Entries[0].AccountID = ""

	payments := planning.UpcomingPayments(snap, now)
	require.Len(t, payments, 1)
	assert.Equal(t, planning.StatusManual, payments[0].Status)
	assert.Empty(t, payments[0].AccountName)
}

func TestUpcomingPayments_OnlyCurrentMonthExpenses(t *testing.T) {
	now := date(2025, time.June, 10)
	snap := riskSnapshot(1000, domain.Checking, 0, 50, false)

	// An income entry and a next-month expense must both be ignored.
	snap.Entries = append(snap.Entries,
		domain.ScheduleEntry{
			EntryID:        "entry-2",
			Name:           "Paycheck",
			EntryType:      domain.EntryIncome,
			Amount:         decimal.NewFromInt(5000),
			CurrencyCode:   "PHP",
			Cadence:        domain.CadenceMonthly,
			NextOccurrence: date(2025, time.June, 15),
			EndMode:        domain.EndIndefinite,
			AccountID:      "acct-1",
			IsActive:       true,
		},
		domain.ScheduleEntry{
			EntryID:        "entry-3",
			Name:           "Insurance",
			EntryType:      domain.EntryExpense,
			Amount:         decimal.NewFromInt(200),
			CurrencyCode:   "PHP",
			Cadence:        domain.CadenceMonthly,
			NextOccurrence: date(2025, time.July, 2),
			EndMode:        domain.EndIndefinite,
			AccountID:      "acct-1",
			IsActive:       true,
		},
	)

	payments := planning.UpcomingPayments(snap, now)
	require.Len(t, payments, 1)
	assert.Equal(t, "entry-1", payments[0].EntryID)
}

func TestUpcomingPayments_OrderedByDueDate(t *testing.T) {
	now := date(2025, time.June, 1)
	snap := riskSnapshot(1000, domain.Checking, 0, 50, false)
	snap.Entries = append(snap.Entries, domain.ScheduleEntry{
		EntryID:        "entry-2",
		Name:           "Gym",
		EntryType:      domain.EntryExpense,
		Amount:         decimal.NewFromInt(30),
		CurrencyCode:   "PHP",
		Cadence:        domain.CadenceMonthly,
		NextOccurrence: date(2025, time.June, 5),
		EndMode:        domain.EndIndefinite,
		AccountID:      "acct-1",
		IsActive:       true,
	})

	payments := planning.UpcomingPayments(snap, now)
	require.Len(t, payments, 2)
	assert.Equal(t, "entry-2", payments[0].EntryID)
	assert.Equal(t, "entry-1", payments[1].EntryID)
}
