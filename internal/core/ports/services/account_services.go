package services

import (
	"context"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by the user.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of the user's active accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account for the user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
