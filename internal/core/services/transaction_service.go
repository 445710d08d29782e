package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService implements portssvc.TransactionSvcFacade.
//
// Every write runs inside a database transaction that locks the touched
// accounts, so concurrent writes cannot interleave balance updates.
type transactionService struct {
	BaseService
	txnRepo        portsrepo.TransactionRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	allocationRepo portsrepo.AllocationRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	allocationRepo portsrepo.AllocationRepositoryFacade,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:        txnRepo,
		accountRepo:    accountRepo,
		allocationRepo: allocationRepo,
	}
}

// balanceEffect returns the per-account balance deltas a posted transaction
// produces. Credit accounts track debt, so a debit grows their balance while
// it shrinks an asset account's. Transfers charge the source for amount plus
// fee and credit the destination with the amount.
func balanceEffect(txn domain.Transaction, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	if !txn.IsPosted {
		return map[string]decimal.Decimal{}, nil
	}

	deltas := make(map[string]decimal.Decimal)
	add := func(accountID string, delta decimal.Decimal) {
		deltas[accountID] = deltas[accountID].Add(delta)
	}
	signed := func(accountID string, txnType domain.TransactionType, amount decimal.Decimal) error {
		account, ok := accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		outflow := txnType == domain.Debit
		if account.IsCredit() == outflow {
			add(accountID, amount)
		} else {
			add(accountID, amount.Neg())
		}
		return nil
	}

	switch txn.TransactionType {
	case domain.Debit, domain.Credit:
		if err := signed(txn.AccountID, txn.TransactionType, txn.Amount); err != nil {
			return nil, err
		}
	case domain.Transfer:
		if err := signed(txn.AccountID, domain.Debit, txn.Amount.Add(txn.TransferFee)); err != nil {
			return nil, err
		}
		if err := signed(txn.TransferToAccountID, domain.Credit, txn.Amount); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txn.TransactionType)
	}
	return deltas, nil
}

// reverse negates a set of balance deltas.
func reverse(deltas map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(deltas))
	for id, d := range deltas {
		out[id] = d.Neg()
	}
	return out
}

// touchedAccounts lists the account IDs a transaction moves money through.
func touchedAccounts(txns ...domain.Transaction) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, txn := range txns {
		for _, id := range []string{txn.AccountID, txn.TransferToAccountID} {
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (s *transactionService) findOwnedTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.TransactionType == domain.Transfer && (req.TransferToAccountID == nil || *req.TransferToAccountID == "") {
		return nil, fmt.Errorf("%w: transferToAccountID is required for transfers", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       req.AccountID,
		Amount:          req.Amount,
		CurrencyCode:    req.CurrencyCode,
		Description:     req.Description,
		TransactionType: req.TransactionType,
		TransactionDate: req.TransactionDate,
		PostingDate:     req.PostingDate,
		ReceiptURL:      req.ReceiptURL,
		InvoiceURL:      req.InvoiceURL,
		IsPosted:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.AllocationID != nil {
		txn.AllocationID = *req.AllocationID
	}
	if req.ScheduleEntryID != nil {
		txn.ScheduleEntryID = *req.ScheduleEntryID
	}
	if req.IsPosted != nil {
		txn.IsPosted = *req.IsPosted
	}
	if req.TransactionType == domain.Transfer {
		txn.TransferFromAccountID = req.AccountID
		txn.TransferToAccountID = *req.TransferToAccountID
		if req.TransferFee != nil {
			txn.TransferFee = *req.TransferFee
		}
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, touchedAccounts(txn))
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
	}

	deltas, err := balanceEffect(txn, accounts)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, deltas, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to apply balance changes", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	// Envelope spend tracking is best-effort and outside the balance
	// transaction: a posted debit against an envelope grows its used amount.
	if txn.AllocationID != "" && txn.IsPosted && txn.TransactionType == domain.Debit {
		if err := s.allocationRepo.AdjustAllocationAmount(ctx, txn.AllocationID, txn.Amount, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to adjust allocation amount", slog.String("allocation_id", txn.AllocationID))
		}
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, transactionID, userID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionListFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		From:       params.From,
		To:         params.To,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	oldTxn, err := s.findOwnedTransaction(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	newTxn := *oldTxn
	if req.CategoryID != nil {
		newTxn.CategoryID = *req.CategoryID
	}
	if req.AllocationID != nil {
		newTxn.AllocationID = *req.AllocationID
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		newTxn.Amount = *req.Amount
	}
	if req.Description != nil {
		newTxn.Description = *req.Description
	}
	if req.TransactionDate != nil {
		newTxn.TransactionDate = *req.TransactionDate
	}
	if req.PostingDate != nil {
		newTxn.PostingDate = req.PostingDate
	}
	if req.ReceiptURL != nil {
		newTxn.ReceiptURL = *req.ReceiptURL
	}
	if req.InvoiceURL != nil {
		newTxn.InvoiceURL = *req.InvoiceURL
	}
	if req.IsPosted != nil {
		newTxn.IsPosted = *req.IsPosted
	}
	if req.IsReconciled != nil {
		newTxn.IsReconciled = *req.IsReconciled
	}

	now := time.Now()
	newTxn.LastUpdatedAt = now
	newTxn.LastUpdatedBy = userID

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, touchedAccounts(*oldTxn, newTxn))
	if err != nil {
		return nil, err
	}

	// Reverse the old effect and apply the new one in a single balance write.
	oldDeltas, err := balanceEffect(*oldTxn, accounts)
	if err != nil {
		return nil, err
	}
	newDeltas, err := balanceEffect(newTxn, accounts)
	if err != nil {
		return nil, err
	}
	merged := reverse(oldDeltas)
	for id, d := range newDeltas {
		merged[id] = merged[id].Add(d)
	}

	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, newTxn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, merged, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to apply balance changes", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &newTxn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	txn, err := s.findOwnedTransaction(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, touchedAccounts(*txn))
	if err != nil {
		return err
	}
	deltas, err := balanceEffect(*txn, accounts)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, reverse(deltas), userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reverse balance changes", slog.String("transaction_id", transactionID))
		return err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return err
	}

	if txn.AllocationID != "" && txn.IsPosted && txn.TransactionType == domain.Debit {
		if err := s.allocationRepo.AdjustAllocationAmount(ctx, txn.AllocationID, txn.Amount.Neg(), userID, now); err != nil {
			s.LogError(ctx, err, "Failed to adjust allocation amount", slog.String("allocation_id", txn.AllocationID))
		}
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
