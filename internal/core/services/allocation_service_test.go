package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/core/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AllocationServiceTestSuite struct {
	suite.Suite
	mockAllocRepo   *MockAllocationRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.AllocationSvcFacade
	userID          string
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockAllocRepo = new(MockAllocationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAllocationService(suite.mockAllocRepo, suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AllocationServiceTestSuite) ownedAccount() *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		AccountType: domain.Savings,
		IsActive:    true,
	}
}

// --- CreateAllocation Tests ---
func (suite *AllocationServiceTestSuite) TestCreateAllocation_BudgetDefaultsPeriod() {
	ctx := context.Background()
	account := suite.ownedAccount()
	target := decimal.NewFromInt(4000)
	req := dto.CreateAllocationRequest{
		AccountID:      account.AccountID,
		Name:           "Groceries",
		AllocationType: domain.AllocationBudget,
		TargetAmount:   &target,
		CurrencyCode:   "PHP",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAllocRepo.On("SaveAllocation", ctx, mock.MatchedBy(func(alloc domain.Allocation) bool {
		return alloc.UserID == suite.userID &&
			alloc.PeriodFrequency == domain.PeriodMonthly &&
			alloc.PeriodStart != nil &&
			alloc.PeriodEnd != nil &&
			alloc.PeriodEnd.After(*alloc.PeriodStart)
	})).Return(nil).Once()

	alloc, err := suite.service.CreateAllocation(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(alloc)
	suite.NotEmpty(alloc.AllocationID)
	suite.True(alloc.IsActive)
	suite.mockAllocRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCreateAllocation_ForeignAccountForbidden() {
	ctx := context.Background()
	account := suite.ownedAccount()
	account.UserID = uuid.NewString()
	req := dto.CreateAllocationRequest{
		AccountID:      account.AccountID,
		Name:           "Groceries",
		AllocationType: domain.AllocationBudget,
		CurrencyCode:   "PHP",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	alloc, err := suite.service.CreateAllocation(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(alloc)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAllocRepo.AssertNotCalled(suite.T(), "SaveAllocation")
}

func (suite *AllocationServiceTestSuite) TestCreateAllocation_EndBeforeStartRejected() {
	ctx := context.Background()
	account := suite.ownedAccount()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	req := dto.CreateAllocationRequest{
		AccountID:      account.AccountID,
		Name:           "Groceries",
		AllocationType: domain.AllocationBudget,
		CurrencyCode:   "PHP",
		PeriodStart:    &start,
		PeriodEnd:      &end,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	alloc, err := suite.service.CreateAllocation(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(alloc)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateAllocation Tests ---
func (suite *AllocationServiceTestSuite) TestUpdateAllocation_FrequencyChangeRecomputesEnd() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	existing := &domain.Allocation{
		AllocationID:    allocationID,
		UserID:          suite.userID,
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		PeriodStart:     &start,
		PeriodEnd:       &end,
		IsActive:        true,
	}
	weekly := domain.PeriodWeekly

	suite.mockAllocRepo.On("FindAllocationByID", ctx, allocationID).Return(existing, nil).Once()
	suite.mockAllocRepo.On("UpdateAllocation", ctx, mock.MatchedBy(func(alloc domain.Allocation) bool {
		return alloc.PeriodFrequency == domain.PeriodWeekly &&
			alloc.PeriodEnd.Equal(start.AddDate(0, 0, 7))
	})).Return(nil).Once()

	alloc, err := suite.service.UpdateAllocation(ctx, allocationID, dto.UpdateAllocationRequest{
		PeriodFrequency: &weekly,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodWeekly, alloc.PeriodFrequency)
	suite.mockAllocRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_NotOwner() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := &domain.Allocation{AllocationID: allocationID, UserID: uuid.NewString()}

	suite.mockAllocRepo.On("FindAllocationByID", ctx, allocationID).Return(existing, nil).Once()

	alloc, err := suite.service.UpdateAllocation(ctx, allocationID, dto.UpdateAllocationRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(alloc)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ListAllocations Tests ---
func (suite *AllocationServiceTestSuite) TestListAllocations_EmptyResult() {
	ctx := context.Background()

	suite.mockAllocRepo.On("ListAllocations", ctx, suite.userID).Return(nil, nil).Once()

	allocs, err := suite.service.ListAllocations(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(allocs)
	suite.Empty(allocs)
	suite.mockAllocRepo.AssertExpectations(suite.T())
}

func TestAllocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
