package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a ledger movement.
type TransactionType string

const (
	Debit    TransactionType = "debit"
	Credit   TransactionType = "credit"
	Transfer TransactionType = "transfer"
)

// Transaction represents a single ledger movement row. Transfers carry the
// source account in AccountID and the destination in TransferToAccountID.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      string          `db:"category_id"`       // Nullable
	AllocationID    string          `db:"allocation_id"`     // Nullable
	ScheduleEntryID string          `db:"schedule_entry_id"` // Nullable
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Description     string          `db:"description"`
	TransactionType TransactionType `db:"transaction_type"`
	TransactionDate time.Time       `db:"transaction_date"`
	PostingDate     *time.Time      `db:"posting_date"`

	TransferFromAccountID string          `db:"transfer_from_account_id"` // Nullable
	TransferToAccountID   string          `db:"transfer_to_account_id"`   // Nullable
	TransferFee           decimal.Decimal `db:"transfer_fee"`

	ReceiptURL   string `db:"receipt_url"`
	InvoiceURL   string `db:"invoice_url"`
	IsPosted     bool   `db:"is_posted"`
	IsReconciled bool   `db:"is_reconciled"`
	AuditFields
}
