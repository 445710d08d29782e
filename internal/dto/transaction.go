package dto

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Transfers require TransferToAccountID; AccountID is the source leg.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	CategoryID      *string                `json:"categoryID"`
	AllocationID    *string                `json:"allocationID"`
	ScheduleEntryID *string                `json:"scheduleEntryID"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required,len=3"`
	Description     string                 `json:"description"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=debit credit transfer"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	PostingDate     *time.Time             `json:"postingDate"`

	TransferToAccountID *string          `json:"transferToAccountID"`
	TransferFee         *decimal.Decimal `json:"transferFee"`

	ReceiptURL string `json:"receiptURL" binding:"omitempty,url"`
	InvoiceURL string `json:"invoiceURL" binding:"omitempty,url"`
	IsPosted   *bool  `json:"isPosted"` // Defaults to true when omitted
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Amount, type, and account changes rewrite the balance effect of the row.
type UpdateTransactionRequest struct {
	CategoryID      *string          `json:"categoryID"`
	AllocationID    *string          `json:"allocationID"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	TransactionDate *time.Time       `json:"transactionDate"`
	PostingDate     *time.Time       `json:"postingDate"`
	ReceiptURL      *string          `json:"receiptURL" binding:"omitempty,url"`
	InvoiceURL      *string          `json:"invoiceURL" binding:"omitempty,url"`
	IsPosted        *bool            `json:"isPosted"`
	IsReconciled    *bool            `json:"isReconciled"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	CategoryID      string                 `json:"categoryID,omitempty"`
	AllocationID    string                 `json:"allocationID,omitempty"`
	ScheduleEntryID string                 `json:"scheduleEntryID,omitempty"`
	Amount          decimal.Decimal        `json:"amount"`
	CurrencyCode    string                 `json:"currencyCode"`
	Description     string                 `json:"description"`
	TransactionType domain.TransactionType `json:"transactionType"`
	TransactionDate time.Time              `json:"transactionDate"`
	PostingDate     *time.Time             `json:"postingDate,omitempty"`

	TransferFromAccountID string          `json:"transferFromAccountID,omitempty"`
	TransferToAccountID   string          `json:"transferToAccountID,omitempty"`
	TransferFee           decimal.Decimal `json:"transferFee"`

	ReceiptURL    string    `json:"receiptURL,omitempty"`
	InvoiceURL    string    `json:"invoiceURL,omitempty"`
	IsPosted      bool      `json:"isPosted"`
	IsReconciled  bool      `json:"isReconciled"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		AccountID:             txn.AccountID,
		CategoryID:            txn.CategoryID,
		AllocationID:          txn.AllocationID,
		ScheduleEntryID:       txn.ScheduleEntryID,
		Amount:                txn.Amount,
		CurrencyCode:          txn.CurrencyCode,
		Description:           txn.Description,
		TransactionType:       txn.TransactionType,
		TransactionDate:       txn.TransactionDate,
		PostingDate:           txn.PostingDate,
		TransferFromAccountID: txn.TransferFromAccountID,
		TransferToAccountID:   txn.TransferToAccountID,
		TransferFee:           txn.TransferFee,
		ReceiptURL:            txn.ReceiptURL,
		InvoiceURL:            txn.InvoiceURL,
		IsPosted:              txn.IsPosted,
		IsReconciled:          txn.IsReconciled,
		CreatedAt:             txn.CreatedAt,
		LastUpdatedAt:         txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  string     `form:"accountID"`
	CategoryID string     `form:"categoryID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=50"`
	Offset     int        `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
