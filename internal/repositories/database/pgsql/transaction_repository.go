package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	"github.com/peraplan/peraplan_backend/internal/models"
	"github.com/peraplan/peraplan_backend/internal/utils/mapping"
)

const transactionColumns = `transaction_id, user_id, account_id, category_id, allocation_id, schedule_entry_id, amount, currency_code, description, transaction_type, transaction_date, posting_date, transfer_from_account_id, transfer_to_account_id, transfer_fee, receipt_url, invoice_url, is_posted, is_reconciled, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// nullable maps an empty string to SQL NULL for optional FK columns.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var categoryID, allocationID, scheduleEntryID, transferFrom, transferTo sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&categoryID,
		&allocationID,
		&scheduleEntryID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.TransactionType,
		&m.TransactionDate,
		&m.PostingDate,
		&transferFrom,
		&transferTo,
		&m.TransferFee,
		&m.ReceiptURL,
		&m.InvoiceURL,
		&m.IsPosted,
		&m.IsReconciled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	m.CategoryID = categoryID.String
	m.AllocationID = allocationID.String
	m.ScheduleEntryID = scheduleEntryID.String
	m.TransferFromAccountID = transferFrom.String
	m.TransferToAccountID = transferTo.String
	return m, nil
}

// SaveTransactionInTx persists a new transaction within a database transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		nullable(m.CategoryID),
		nullable(m.AllocationID),
		nullable(m.ScheduleEntryID),
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.TransactionType,
		m.TransactionDate,
		m.PostingDate,
		nullable(m.TransferFromAccountID),
		nullable(m.TransferToAccountID),
		m.TransferFee,
		m.ReceiptURL,
		m.InvoiceURL,
		m.IsPosted,
		m.IsReconciled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// UpdateTransactionInTx updates an existing transaction within a database transaction.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET category_id = $2, allocation_id = $3, amount = $4, description = $5, transaction_date = $6, posting_date = $7, receipt_url = $8, invoice_url = $9, is_posted = $10, is_reconciled = $11, last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		nullable(m.CategoryID),
		nullable(m.AllocationID),
		m.Amount,
		m.Description,
		m.TransactionDate,
		m.PostingDate,
		m.ReceiptURL,
		m.InvoiceURL,
		m.IsPosted,
		m.IsReconciled,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionInTx removes a transaction within a database transaction.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`

	cmdTag, err := tx.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to execute delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves transactions for a user, newest first, narrowed
// by the optional filter dimensions.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND (account_id = $%d OR transfer_to_account_id = $%d)", len(args), len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectTransactions(rows, userID)
}

// ListTransactionsInRange retrieves all of a user's transactions dated inside [from, to].
func (r *PgxTransactionRepository) ListTransactionsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
		ORDER BY transaction_date;
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions in range for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectTransactions(rows, userID)
}

func collectTransactions(rows pgx.Rows, userID string) ([]domain.Transaction, error) {
	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for user %s: %w", userID, err)
		}
		txns = append(txns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows for user %s: %w", userID, rows.Err())
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}
