package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/core/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, from, to)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	args := m.Called(ctx, tx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AllocationRepository ---
type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	args := m.Called(ctx, allocationID)
	var alloc *domain.Allocation
	if args.Get(0) != nil {
		alloc = args.Get(0).(*domain.Allocation)
	}
	return alloc, args.Error(1)
}

func (m *MockAllocationRepository) ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, userID)
	var allocs []domain.Allocation
	if args.Get(0) != nil {
		allocs = args.Get(0).([]domain.Allocation)
	}
	return allocs, args.Error(1)
}

func (m *MockAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) AdjustAllocationAmount(ctx context.Context, allocationID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, allocationID, delta, userID, now)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeactivateAllocation(ctx context.Context, allocationID string, userID string, now time.Time) error {
	args := m.Called(ctx, allocationID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockAllocRepo   *MockAllocationRepository
	service         portssvc.TransactionSvcFacade
	userID          string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAllocRepo = new(MockAllocationRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockAllocRepo)
	suite.userID = uuid.NewString()
}

// expectTx wires a Begin/Rollback pair; Commit is registered separately so
// failure paths can omit it.
func (suite *TransactionServiceTestSuite) expectTx(ctx context.Context) {
	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, nil).Return(pgx.ErrTxClosed).Maybe()
}

func (suite *TransactionServiceTestSuite) assetAccount(balance int64) domain.Account {
	return domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		AccountType: domain.Checking,
		Balance:     decimal.NewFromInt(balance),
		IsActive:    true,
	}
}

// --- CreateTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestCreateTransaction_DebitReducesAssetBalance() {
	ctx := context.Background()
	account := suite.assetAccount(1000)
	amount := decimal.NewFromInt(150)
	req := dto.CreateTransactionRequest{
		AccountID:       account.AccountID,
		Amount:          amount,
		CurrencyCode:    "PHP",
		TransactionType: domain.Debit,
		TransactionDate: time.Now(),
	}

	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{account.AccountID}).
		Return(map[string]domain.Account{account.AccountID: account}, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == account.AccountID && txn.IsPosted
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, nil, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 1 && deltas[account.AccountID].Equal(amount.Neg())
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DebitGrowsCreditCardDebt() {
	ctx := context.Background()
	card := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		AccountType: domain.CreditAccount,
		Balance:     decimal.NewFromInt(200),
		CreditLimit: decimal.NewFromInt(10000),
		IsActive:    true,
	}
	amount := decimal.NewFromInt(450)
	req := dto.CreateTransactionRequest{
		AccountID:       card.AccountID,
		Amount:          amount,
		CurrencyCode:    "PHP",
		TransactionType: domain.Debit,
		TransactionDate: time.Now(),
	}

	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{card.AccountID}).
		Return(map[string]domain.Account{card.AccountID: card}, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, nil, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return deltas[card.AccountID].Equal(amount)
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferChargesFeeOnSource() {
	ctx := context.Background()
	source := suite.assetAccount(5000)
	dest := suite.assetAccount(0)
	amount := decimal.NewFromInt(1000)
	fee := decimal.NewFromInt(15)
	req := dto.CreateTransactionRequest{
		AccountID:           source.AccountID,
		Amount:              amount,
		CurrencyCode:        "PHP",
		TransactionType:     domain.Transfer,
		TransactionDate:     time.Now(),
		TransferToAccountID: &dest.AccountID,
		TransferFee:         &fee,
	}

	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{source.AccountID, dest.AccountID}).
		Return(map[string]domain.Account{source.AccountID: source, dest.AccountID: dest}, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransferFromAccountID == source.AccountID && txn.TransferToAccountID == dest.AccountID
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, nil, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return deltas[source.AccountID].Equal(decimal.NewFromInt(-1015)) &&
			deltas[dest.AccountID].Equal(amount)
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferWithoutDestination() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:       uuid.NewString(),
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    "PHP",
		TransactionType: domain.Transfer,
		TransactionDate: time.Now(),
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnpostedSkipsBalances() {
	ctx := context.Background()
	account := suite.assetAccount(1000)
	unposted := false
	req := dto.CreateTransactionRequest{
		AccountID:       account.AccountID,
		Amount:          decimal.NewFromInt(75),
		CurrencyCode:    "PHP",
		TransactionType: domain.Debit,
		TransactionDate: time.Now(),
		IsPosted:        &unposted,
	}

	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{account.AccountID}).
		Return(map[string]domain.Account{account.AccountID: account}, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return !txn.IsPosted
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, nil, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 0
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(txn.IsPosted)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignAccountForbidden() {
	ctx := context.Background()
	account := suite.assetAccount(1000)
	account.UserID = uuid.NewString()
	req := dto.CreateTransactionRequest{
		AccountID:       account.AccountID,
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    "PHP",
		TransactionType: domain.Debit,
		TransactionDate: time.Now(),
	}

	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{account.AccountID}).
		Return(map[string]domain.Account{account.AccountID: account}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Commit")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PostedDebitAdjustsEnvelope() {
	ctx := context.Background()
	account := suite.assetAccount(1000)
	allocationID := uuid.NewString()
	amount := decimal.NewFromInt(300)
	req := dto.CreateTransactionRequest{
		AccountID:       account.AccountID,
		Amount:          amount,
		CurrencyCode:    "PHP",
		TransactionType: domain.Debit,
		TransactionDate: time.Now(),
		AllocationID:    &allocationID,
	}

	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{account.AccountID}).
		Return(map[string]domain.Account{account.AccountID: account}, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, nil, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockAllocRepo.On("AdjustAllocationAmount", ctx, allocationID, amount, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockAllocRepo.AssertExpectations(suite.T())
}

// --- DeleteTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesBalances() {
	ctx := context.Background()
	account := suite.assetAccount(1000)
	amount := decimal.NewFromInt(200)
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       account.AccountID,
		Amount:          amount,
		TransactionType: domain.Debit,
		IsPosted:        true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.expectTx(ctx)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, []string{account.AccountID}).
		Return(map[string]domain.Account{account.AccountID: account}, nil).Once()
	suite.mockTxnRepo.On("DeleteTransactionInTx", ctx, nil, txn.TransactionID).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, nil, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return deltas[account.AccountID].Equal(amount)
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotOwner() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        uuid.NewString(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.DeleteTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin")
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
