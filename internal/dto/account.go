package dto

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name                 string             `json:"name" binding:"required"`
	AccountType          domain.AccountType `json:"accountType" binding:"required,oneof=cash e_wallet savings checking credit"`
	CurrencyCode         string             `json:"currencyCode" binding:"required,len=3"`
	Balance              *decimal.Decimal   `json:"balance"` // Optional opening balance, defaults to zero
	Description          string             `json:"description"`
	CreditLimit          *decimal.Decimal   `json:"creditLimit"`          // Credit accounts only
	DueDay               int                `json:"dueDay" binding:"omitempty,min=1,max=31"`
	BillingCycleStartDay int                `json:"billingCycleStartDay" binding:"omitempty,min=1,max=31"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name                 *string          `json:"name"`
	Description          *string          `json:"description"`
	CreditLimit          *decimal.Decimal `json:"creditLimit"`
	DueDay               *int             `json:"dueDay" binding:"omitempty,min=1,max=31"`
	BillingCycleStartDay *int             `json:"billingCycleStartDay" binding:"omitempty,min=1,max=31"`
	IsActive             *bool            `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID            string             `json:"accountID"`
	Name                 string             `json:"name"`
	AccountType          domain.AccountType `json:"accountType"`
	CurrencyCode         string             `json:"currencyCode"`
	Balance              decimal.Decimal    `json:"balance"`
	Description          string             `json:"description"`
	CreditLimit          decimal.Decimal    `json:"creditLimit"`
	DueDay               int                `json:"dueDay"`
	BillingCycleStartDay int                `json:"billingCycleStartDay"`
	IsActive             bool               `json:"isActive"`
	CreatedAt            time.Time          `json:"createdAt"`
	LastUpdatedAt        time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:            acc.AccountID,
		Name:                 acc.Name,
		AccountType:          acc.AccountType,
		CurrencyCode:         acc.CurrencyCode,
		Balance:              acc.Balance,
		Description:          acc.Description,
		CreditLimit:          acc.CreditLimit,
		DueDay:               acc.DueDay,
		BillingCycleStartDay: acc.BillingCycleStartDay,
		IsActive:             acc.IsActive,
		CreatedAt:            acc.CreatedAt,
		LastUpdatedAt:        acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
