package planning

import (
	"sort"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentStatus classifies an upcoming expense occurrence.
type PaymentStatus string

const (
	// StatusDanger means paying would overdraw the account or breach the
	// credit limit. Danger overrides the autopay/manual distinction.
	StatusDanger  PaymentStatus = "danger"
	StatusAutopay PaymentStatus = "autopay"
	StatusManual  PaymentStatus = "manual"
)

// UpcomingPayment is one expense occurrence due this calendar month with its
// affordability verdict.
type UpcomingPayment struct {
	EntryID          string          `json:"entryID"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	DueDate          time.Time       `json:"dueDate"`
	AccountID        string          `json:"accountID,omitempty"`
	AccountName      string          `json:"accountName,omitempty"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"` // account balance after the payment; zero when no account is linked
	Status           PaymentStatus   `json:"status"`
}

// UpcomingPayments projects the expense occurrences still due in now's
// calendar month and flags the ones the linked account cannot absorb. Credit
// accounts with a positive limit are flagged when the charge would push the
// carried balance past the limit; asset accounts when the balance would go
// negative. Entries without a linked account are listed but never flagged,
// since there is no balance to check. Output is ordered by due date ascending.
func UpcomingPayments(snap Snapshot, now time.Time) []UpcomingPayment {
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0).Add(-time.Nanosecond)

	var payments []UpcomingPayment
	for _, entry := range snap.Entries {
		if !entry.IsActive || entry.EntryType != domain.EntryExpense {
			continue
		}
		for _, occ := range Occurrences(entry, windowStart, windowEnd, DefaultMaxIterations) {
			payment := UpcomingPayment{
				EntryID:      entry.EntryID,
				Name:         entry.Name,
				Amount:       entry.Amount,
				CurrencyCode: entry.CurrencyCode,
				DueDate:      occ,
				AccountID:    entry.AccountID,
				Status:       manualOrAutopay(entry),
			}

			if account, ok := snap.AccountByID(entry.AccountID); ok {
				payment.AccountName = account.Name
				if account.IsCredit() && account.CreditLimit.IsPositive() {
					charged := account.Balance.Add(entry.Amount)
					payment.ProjectedBalance = charged
					if charged.GreaterThan(account.CreditLimit) {
						payment.Status = StatusDanger
					}
				} else {
					afterPayment := account.Balance.Sub(entry.Amount)
					payment.ProjectedBalance = afterPayment
					if afterPayment.IsNegative() {
						payment.Status = StatusDanger
					}
				}
			}

			payments = append(payments, payment)
		}
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate.Before(payments[j].DueDate)
	})
	return payments
}

func manualOrAutopay(entry domain.ScheduleEntry) PaymentStatus {
	if entry.IsAutopay {
		return StatusAutopay
	}
	return StatusManual
}
