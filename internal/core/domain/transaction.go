package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is a debit, a credit, or a
// transfer between two of the user's own accounts.
type TransactionType string

const (
	Debit    TransactionType = "debit"
	Credit   TransactionType = "credit"
	Transfer TransactionType = "transfer"
)

// Transaction represents a single ledger movement against one account.
// Transfers carry the source account in AccountID and the destination in
// TransferToAccountID.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`        // FK -> users.user_id (Not Null)
	AccountID       string          `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	CategoryID      string          `json:"categoryID"`    // Nullable FK -> categories.category_id
	AllocationID    string          `json:"allocationID"`  // Nullable FK -> allocations.allocation_id
	ScheduleEntryID string          `json:"scheduleEntryID"` // Nullable FK -> the schedule entry that produced this transaction
	Amount          decimal.Decimal `json:"amount"`          // Positive value
	CurrencyCode    string          `json:"currencyCode"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	TransactionDate time.Time       `json:"transactionDate"`
	PostingDate     *time.Time      `json:"postingDate,omitempty"` // For credit card transactions

	// Transfer-only fields
	TransferFromAccountID string          `json:"transferFromAccountID,omitempty"`
	TransferToAccountID   string          `json:"transferToAccountID,omitempty"`
	TransferFee           decimal.Decimal `json:"transferFee"`

	ReceiptURL   string `json:"receiptURL,omitempty"`
	InvoiceURL   string `json:"invoiceURL,omitempty"`
	IsPosted     bool   `json:"isPosted"`
	IsReconciled bool   `json:"isReconciled"`
	AuditFields
}
