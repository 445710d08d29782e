package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// TransactionListFilter narrows ListTransactions to a subset of rows.
// Zero values mean the dimension is not filtered.
type TransactionListFilter struct {
	AccountID  string
	CategoryID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions for a user, newest first.
	ListTransactions(ctx context.Context, userID string, filter TransactionListFilter) ([]domain.Transaction, error)

	// ListTransactionsInRange retrieves all of a user's transactions dated inside [from, to].
	ListTransactionsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction within a database transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionInTx updates an existing transaction within a database transaction.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// DeleteTransactionInTx removes a transaction within a database transaction.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionManager
}
