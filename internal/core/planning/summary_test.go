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

func postedTxn(id string, txnType domain.TransactionType, amount int64, day time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		AccountID:       "acct-1",
		Amount:          decimal.NewFromInt(amount),
		CurrencyCode:    "PHP",
		TransactionType: txnType,
		TransactionDate: day,
		IsPosted:        true,
	}
}

func TestSummarize_ActualsFromPostedTransactions(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)

	snap := planning.Snapshot{
		Transactions: []domain.Transaction{
			postedTxn("t1", domain.Credit, 5000, date(2025, time.June, 5)),
			postedTxn("t2", domain.Debit, 1200, date(2025, time.June, 8)),
			postedTxn("t3", domain.Debit, 300, date(2025, time.June, 12)),
			// Pending and out-of-window rows must not count.
			{
				TransactionID:   "t4",
				Amount:          decimal.NewFromInt(900),
				CurrencyCode:    "PHP",
				TransactionType: domain.Debit,
				TransactionDate: date(2025, time.June, 20),
				IsPosted:        false,
			},
			postedTxn("t5", domain.Debit, 700, date(2025, time.July, 1)),
		},
	}

	summary := planning.Summarize(snap, start, end, "PHP")

	assert.True(t, summary.ActualIncome.Equal(decimal.NewFromInt(5000)))
	assert.True(t, summary.ActualExpenses.Equal(decimal.NewFromInt(1500)))
	assert.True(t, summary.ActualNet.Equal(decimal.NewFromInt(3500)))
}

func TestSummarize_TransfersExcludedFromActuals(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)

	snap := planning.Snapshot{
		Transactions: []domain.Transaction{
			postedTxn("t1", domain.Transfer, 2000, date(2025, time.June, 5)),
		},
	}

	summary := planning.Summarize(snap, start, end, "PHP")
	assert.True(t, summary.ActualIncome.IsZero())
	assert.True(t, summary.ActualExpenses.IsZero())
}

func TestSummarize_ForecastFiltersByCurrency(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)

	php := monthlyEntry(date(2025, time.June, 15))
	usd := monthlyEntry(date(2025, time.June, 16))
	usd.EntryID = "entry-usd"
	usd.CurrencyCode = "USD"

	snap := planning.Snapshot{Entries: []domain.ScheduleEntry{php, usd}}

	summary := planning.Summarize(snap, start, end, "PHP")

	require.Len(t, summary.EntryForecasts, 1, "mismatched currency is dropped, not converted")
	assert.Equal(t, "entry-1", summary.EntryForecasts[0].EntryID)
	assert.True(t, summary.ForecastExpenses.Equal(decimal.NewFromInt(15)))
}

func TestSummarize_ForecastTotalIsCountTimesAmount(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.August, 31)

	entry := monthlyEntry(date(2025, time.June, 15))
	snap := planning.Snapshot{Entries: []domain.ScheduleEntry{entry}}

	summary := planning.Summarize(snap, start, end, "PHP")

	require.Len(t, summary.EntryForecasts, 1)
	f := summary.EntryForecasts[0]
	assert.Len(t, f.Occurrences, 3)
	assert.True(t, f.ForecastTotal.Equal(decimal.NewFromInt(45)))
	assert.True(t, summary.ForecastNet.Equal(decimal.NewFromInt(-45)))
}

func TestSummarize_ProjectedBalanceDoesNotDoubleCountRealized(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)

	rent := monthlyEntry(date(2025, time.June, 5))
	rent.Name = "Rent"
	rent.Amount = decimal.NewFromInt(1000)

	paid := postedTxn("t1", domain.Debit, 1000, date(2025, time.June, 5))
	paid.ScheduleEntryID = rent.EntryID

	snap := planning.Snapshot{
		Accounts: []domain.Account{{
			AccountID:    "acct-1",
			Balance:      decimal.NewFromInt(4000), // already reflects the paid rent
			CurrencyCode: "PHP",
			AccountType:  domain.Checking,
			IsActive:     true,
		}},
		Entries:      []domain.ScheduleEntry{rent},
		Transactions: []domain.Transaction{paid},
	}

	summary := planning.Summarize(snap, start, end, "PHP")

	require.Len(t, summary.EntryForecasts, 1)
	assert.True(t, summary.EntryForecasts[0].ActualTotal.Equal(decimal.NewFromInt(1000)))

	// Forecast says -1000, but the rent already posted and the balance already
	// absorbed it, so the projection must not subtract it again.
	assert.True(t, summary.CurrentBalance.Equal(decimal.NewFromInt(4000)))
	assert.True(t, summary.ProjectedBalance.Equal(decimal.NewFromInt(4000)),
		"projected = current + forecast net - realized net")
}

func TestSummarize_CurrentBalanceOnlyMatchingCurrency(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)

	snap := planning.Snapshot{
		Accounts: []domain.Account{
			{AccountID: "a1", Balance: decimal.NewFromInt(100), CurrencyCode: "PHP", AccountType: domain.Cash, IsActive: true},
			{AccountID: "a2", Balance: decimal.NewFromInt(999), CurrencyCode: "USD", AccountType: domain.Savings, IsActive: true},
		},
	}

	summary := planning.Summarize(snap, start, end, "PHP")
	assert.True(t, summary.CurrentBalance.Equal(decimal.NewFromInt(100)))
}

func TestSummarize_InactiveEntriesSkipped(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)

	entry := monthlyEntry(date(2025, time.June, 15))
	entry.IsActive = false

	summary := planning.Summarize(planning.Snapshot{Entries: []domain.ScheduleEntry{entry}}, start, end, "PHP")
	assert.Empty(t, summary.EntryForecasts)
	assert.True(t, summary.ForecastExpenses.IsZero())
}
