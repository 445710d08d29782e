package services

import (
	"context"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction owned by the user.
	GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves the user's transactions, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data.
// Every write keeps account balances consistent: posted debits and credits
// move the linked account, transfers move both legs plus the fee.
type TransactionWriterSvc interface {
	// CreateTransaction records a new transaction and applies its balance effect.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction updates a transaction, reversing the old balance effect
	// and applying the new one.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
