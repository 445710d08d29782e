package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account for display and for projection rules.
// Credit accounts accumulate debt toward a credit limit; all other types are
// asset-style accounts whose balance should stay non-negative.
type AccountType string

const (
	Cash     AccountType = "cash"
	EWallet  AccountType = "e_wallet"
	Savings  AccountType = "savings"
	Checking AccountType = "checking"
	CreditAccount AccountType = "credit"
)

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID    string          `json:"accountID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // FK -> users.user_id (Not Null)
	Name         string          `json:"name"`      // User-defined name
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Description  string          `json:"description"`

	// Credit card specific fields; zero for non-credit accounts.
	CreditLimit          decimal.Decimal `json:"creditLimit"`
	DueDay               int             `json:"dueDay"`               // Day of month the statement is due
	BillingCycleStartDay int             `json:"billingCycleStartDay"` // Day of month the cycle opens

	IsActive bool `json:"isActive"`
	AuditFields
}

// IsCredit reports whether the account accumulates debt against a limit.
func (a Account) IsCredit() bool {
	return a.AccountType == CreditAccount
}
