package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	"github.com/peraplan/peraplan_backend/internal/models"
	"github.com/peraplan/peraplan_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, name, account_type, currency_code, balance, description, credit_limit, due_day, billing_cycle_start_day, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.Balance,
		&m.Description,
		&m.CreditLimit,
		&m.DueDay,
		&m.BillingCycleStartDay,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.Balance,
		m.Description,
		m.CreditLimit,
		m.DueDay,
		m.BillingCycleStartDay,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are
// simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of active accounts for a user.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE AND user_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, rows.Err())
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccount updates an existing account's editable fields. Account type,
// currency and balance are not updatable here; balances change only through
// transaction writes.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, credit_limit = $4, due_day = $5, billing_cycle_start_day = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.CreditLimit,
		m.DueDay,
		m.BillingCycleStartDay,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account doesn't exist or it was already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		return apperrors.ErrValidation
	}

	return nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx updates balances for multiple accounts within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	return batchErr
}
