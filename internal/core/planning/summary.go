package planning

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryForecast is the projection of one schedule entry over a window,
// paired with what has already posted against it.
type EntryForecast struct {
	EntryID       string           `json:"entryID"`
	Name          string           `json:"name"`
	EntryType     domain.EntryType `json:"entryType"`
	CurrencyCode  string           `json:"currencyCode"`
	Occurrences   []time.Time      `json:"occurrences"`
	ForecastTotal decimal.Decimal  `json:"forecastTotal"` // occurrence count x entry amount
	ActualTotal   decimal.Decimal  `json:"actualTotal"`   // posted transactions linked to this entry inside the window
}

// PeriodSummary combines realized ledger activity and projected schedule
// activity over one reporting window.
//
// Actual totals count every posted debit/credit in the window regardless of
// currency; they reflect per-account-currency truth. Forecast totals only
// include entries whose currency matches the reporting currency. Mismatched
// entries are dropped, never converted.
type PeriodSummary struct {
	RangeStart   time.Time `json:"rangeStart"`
	RangeEnd     time.Time `json:"rangeEnd"`
	CurrencyCode string    `json:"currencyCode"`

	ActualIncome   decimal.Decimal `json:"actualIncome"`
	ActualExpenses decimal.Decimal `json:"actualExpenses"`
	ActualNet      decimal.Decimal `json:"actualNet"`

	ForecastIncome   decimal.Decimal `json:"forecastIncome"`
	ForecastExpenses decimal.Decimal `json:"forecastExpenses"`
	ForecastNet      decimal.Decimal `json:"forecastNet"`

	EntryForecasts []EntryForecast `json:"entryForecasts"`

	CurrentBalance   decimal.Decimal `json:"currentBalance"`   // total balance of accounts in the reporting currency
	ProjectedBalance decimal.Decimal `json:"projectedBalance"` // current balance plus the unrealized remainder of the projection
}

// Summarize aggregates the snapshot over [rangeStart, rangeEnd] for one
// reporting currency.
func Summarize(snap Snapshot, rangeStart, rangeEnd time.Time, currencyCode string) PeriodSummary {
	summary := PeriodSummary{
		RangeStart:   rangeStart,
		RangeEnd:     rangeEnd,
		CurrencyCode: currencyCode,
	}

	for _, txn := range snap.Transactions {
		if !txn.IsPosted || !inWindow(txn.TransactionDate, rangeStart, rangeEnd) {
			continue
		}
		switch txn.TransactionType {
		case domain.Credit:
			summary.ActualIncome = summary.ActualIncome.Add(txn.Amount)
		case domain.Debit:
			summary.ActualExpenses = summary.ActualExpenses.Add(txn.Amount)
		}
	}
	summary.ActualNet = summary.ActualIncome.Sub(summary.ActualExpenses)

	// realizedNet is the portion of the projection that already posted; it is
	// subtracted from the forecast so the projected balance does not count the
	// same money twice.
	realizedNet := decimal.Zero
	for _, entry := range snap.Entries {
		if !entry.IsActive || entry.CurrencyCode != currencyCode {
			continue
		}
		occurrences := Occurrences(entry, rangeStart, rangeEnd, DefaultMaxIterations)
		if len(occurrences) == 0 {
			continue
		}

		forecastTotal := entry.Amount.Mul(decimal.NewFromInt(int64(len(occurrences))))
		actualTotal := decimal.Zero
		for _, txn := range snap.Transactions {
			if txn.IsPosted && txn.ScheduleEntryID == entry.EntryID && inWindow(txn.TransactionDate, rangeStart, rangeEnd) {
				actualTotal = actualTotal.Add(txn.Amount)
			}
		}

		switch entry.EntryType {
		case domain.EntryIncome:
			summary.ForecastIncome = summary.ForecastIncome.Add(forecastTotal)
			realizedNet = realizedNet.Add(actualTotal)
		case domain.EntryExpense:
			summary.ForecastExpenses = summary.ForecastExpenses.Add(forecastTotal)
			realizedNet = realizedNet.Sub(actualTotal)
		}

		summary.EntryForecasts = append(summary.EntryForecasts, EntryForecast{
			EntryID:       entry.EntryID,
			Name:          entry.Name,
			EntryType:     entry.EntryType,
			CurrencyCode:  entry.CurrencyCode,
			Occurrences:   occurrences,
			ForecastTotal: forecastTotal,
			ActualTotal:   actualTotal,
		})
	}
	summary.ForecastNet = summary.ForecastIncome.Sub(summary.ForecastExpenses)

	for _, account := range snap.Accounts {
		if account.CurrencyCode == currencyCode {
			summary.CurrentBalance = summary.CurrentBalance.Add(account.Balance)
		}
	}
	summary.ProjectedBalance = summary.CurrentBalance.Add(summary.ForecastNet.Sub(realizedNet))

	return summary
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
