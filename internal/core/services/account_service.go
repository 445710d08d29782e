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

// accountService implements portssvc.AccountSvcFacade.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// findOwnedAccount fetches an account and verifies the requesting user owns it.
func (s *accountService) findOwnedAccount(ctx context.Context, accountID, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := time.Now()

	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}
	creditLimit := decimal.Zero
	if req.CreditLimit != nil {
		creditLimit = *req.CreditLimit
	}
	if req.AccountType != domain.CreditAccount && creditLimit.IsPositive() {
		return nil, fmt.Errorf("%w: credit limit is only valid for credit accounts", apperrors.ErrValidation)
	}

	account := domain.Account{
		AccountID:            uuid.NewString(),
		UserID:               userID,
		Name:                 req.Name,
		AccountType:          req.AccountType,
		CurrencyCode:         req.CurrencyCode,
		Balance:              balance,
		Description:          req.Description,
		CreditLimit:          creditLimit,
		DueDay:               req.DueDay,
		BillingCycleStartDay: req.BillingCycleStartDay,
		IsActive:             true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, accountID, userID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.CreditLimit != nil {
		if !account.IsCredit() {
			return nil, fmt.Errorf("%w: credit limit is only valid for credit accounts", apperrors.ErrValidation)
		}
		account.CreditLimit = *req.CreditLimit
	}
	if req.DueDay != nil {
		account.DueDay = *req.DueDay
	}
	if req.BillingCycleStartDay != nil {
		account.BillingCycleStartDay = *req.BillingCycleStartDay
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.findOwnedAccount(ctx, accountID, userID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
