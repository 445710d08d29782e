package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the kind of money container an account represents.
type AccountType string

const (
	Cash     AccountType = "cash"
	EWallet  AccountType = "e_wallet"
	Savings  AccountType = "savings"
	Checking AccountType = "checking"
	CreditAccount AccountType = "credit"
)

// Account represents a user's financial account row.
type Account struct {
	AccountID            string          `db:"account_id"`
	UserID               string          `db:"user_id"`
	Name                 string          `db:"name"`
	AccountType          AccountType     `db:"account_type"`
	CurrencyCode         string          `db:"currency_code"`
	Balance              decimal.Decimal `db:"balance"`
	Description          string          `db:"description"`
	CreditLimit          decimal.Decimal `db:"credit_limit"`           // Credit accounts only
	DueDay               int             `db:"due_day"`                // Day of month the statement is due, 0 when unset
	BillingCycleStartDay int             `db:"billing_cycle_start_day"`
	IsActive             bool            `db:"is_active"`
	AuditFields
}
