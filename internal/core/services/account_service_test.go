package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/core/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	var accounts map[string]domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// --- CreateAccount Tests ---
func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	balance := decimal.NewFromInt(2500)
	req := dto.CreateAccountRequest{
		Name:         "BPI Savings",
		AccountType:  domain.Savings,
		CurrencyCode: "PHP",
		Balance:      &balance,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.UserID == suite.userID &&
			account.AccountType == domain.Savings &&
			account.Balance.Equal(balance) &&
			account.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("BPI Savings", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsBalanceToZero() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "GCash",
		AccountType:  domain.EWallet,
		CurrencyCode: "PHP",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.Balance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(account.Balance.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditLimitOnNonCreditAccount() {
	ctx := context.Background()
	limit := decimal.NewFromInt(10000)
	req := dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  domain.Cash,
		CurrencyCode: "PHP",
		CreditLimit:  &limit,
	}

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

// --- GetAccountByID Tests ---
func (suite *AccountServiceTestSuite) TestGetAccountByID_Forbidden() {
	ctx := context.Background()
	accountID := uuid.NewString()
	other := &domain.Account{AccountID: accountID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(other, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- UpdateAccount Tests ---
func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		UserID:      suite.userID,
		Name:        "Old Name",
		AccountType: domain.Checking,
		IsActive:    true,
	}
	newName := "New Name"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.Name == newName && account.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CreditLimitOnNonCreditAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		UserID:      suite.userID,
		AccountType: domain.Cash,
	}
	limit := decimal.NewFromInt(5000)

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{CreditLimit: &limit}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

// --- ListAccounts Tests ---
func (suite *AccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, suite.userID, 20, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.userID, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeactivateAccount Tests ---
func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, UserID: suite.userID, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
