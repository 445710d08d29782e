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

// --- Mock ScheduleEntryRepository ---
type MockScheduleEntryRepository struct {
	mock.Mock
}

func (m *MockScheduleEntryRepository) FindScheduleEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.ScheduleEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.ScheduleEntry)
	}
	return entry, args.Error(1)
}

func (m *MockScheduleEntryRepository) ListScheduleEntries(ctx context.Context, userID string, includeInactive bool) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx, userID, includeInactive)
	var entries []domain.ScheduleEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.ScheduleEntry)
	}
	return entries, args.Error(1)
}

func (m *MockScheduleEntryRepository) SaveScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockScheduleEntryRepository) UpdateScheduleEntry(ctx context.Context, entry domain.ScheduleEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockScheduleEntryRepository) DeactivateScheduleEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type ScheduleEntryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockScheduleEntryRepository
	service  portssvc.ScheduleEntrySvcFacade
	userID   string
}

func (suite *ScheduleEntryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockScheduleEntryRepository)
	suite.service = services.NewScheduleEntryService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *ScheduleEntryServiceTestSuite) baseCreateRequest() dto.CreateScheduleEntryRequest {
	return dto.CreateScheduleEntryRequest{
		Name:           "Rent",
		EntryType:      domain.EntryExpense,
		Amount:         decimal.NewFromInt(12000),
		CurrencyCode:   "PHP",
		Cadence:        domain.CadenceMonthly,
		NextOccurrence: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		LeadTimeDays:   3,
	}
}

// --- CreateScheduleEntry Tests ---
func (suite *ScheduleEntryServiceTestSuite) TestCreateScheduleEntry_DefaultsToIndefinite() {
	ctx := context.Background()
	req := suite.baseCreateRequest()

	suite.mockRepo.On("SaveScheduleEntry", ctx, mock.MatchedBy(func(entry domain.ScheduleEntry) bool {
		return entry.UserID == suite.userID &&
			entry.EndMode == domain.EndIndefinite &&
			entry.EndDate == nil &&
			entry.IsActive
	})).Return(nil).Once()

	entry, err := suite.service.CreateScheduleEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.EndIndefinite, entry.EndMode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleEntryServiceTestSuite) TestCreateScheduleEntry_OnDateRequiresEndDate() {
	ctx := context.Background()
	req := suite.baseCreateRequest()
	req.EndMode = domain.EndOnDate

	entry, err := suite.service.CreateScheduleEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveScheduleEntry")
}

func (suite *ScheduleEntryServiceTestSuite) TestCreateScheduleEntry_AfterOccurrencesRequiresCap() {
	ctx := context.Background()
	req := suite.baseCreateRequest()
	req.EndMode = domain.EndAfterOccurrences
	req.MaxOccurrences = 0

	entry, err := suite.service.CreateScheduleEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ScheduleEntryServiceTestSuite) TestCreateScheduleEntry_IndefiniteClearsTerminationFields() {
	ctx := context.Background()
	req := suite.baseCreateRequest()
	req.EndMode = domain.EndIndefinite
	endDate := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	req.EndDate = &endDate
	req.MaxOccurrences = 5

	suite.mockRepo.On("SaveScheduleEntry", ctx, mock.MatchedBy(func(entry domain.ScheduleEntry) bool {
		return entry.EndDate == nil && entry.MaxOccurrences == 0
	})).Return(nil).Once()

	entry, err := suite.service.CreateScheduleEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry.EndDate)
	suite.Zero(entry.MaxOccurrences)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleEntryServiceTestSuite) TestCreateScheduleEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.baseCreateRequest()
	req.Amount = decimal.Zero

	entry, err := suite.service.CreateScheduleEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateScheduleEntry Tests ---
func (suite *ScheduleEntryServiceTestSuite) TestUpdateScheduleEntry_SwitchToOnDate() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.ScheduleEntry{
		EntryID:  entryID,
		UserID:   suite.userID,
		Name:     "Rent",
		Amount:   decimal.NewFromInt(12000),
		Cadence:  domain.CadenceMonthly,
		EndMode:  domain.EndIndefinite,
		IsActive: true,
	}
	endMode := domain.EndOnDate
	endDate := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindScheduleEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateScheduleEntry", ctx, mock.MatchedBy(func(entry domain.ScheduleEntry) bool {
		return entry.EndMode == domain.EndOnDate && entry.EndDate != nil && entry.EndDate.Equal(endDate)
	})).Return(nil).Once()

	entry, err := suite.service.UpdateScheduleEntry(ctx, entryID, dto.UpdateScheduleEntryRequest{
		EndMode: &endMode,
		EndDate: &endDate,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EndOnDate, entry.EndMode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleEntryServiceTestSuite) TestUpdateScheduleEntry_Forbidden() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.ScheduleEntry{EntryID: entryID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindScheduleEntryByID", ctx, entryID).Return(existing, nil).Once()

	entry, err := suite.service.UpdateScheduleEntry(ctx, entryID, dto.UpdateScheduleEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateScheduleEntry")
}

// --- ListScheduleEntries Tests ---
func (suite *ScheduleEntryServiceTestSuite) TestListScheduleEntries_EmptyResult() {
	ctx := context.Background()

	suite.mockRepo.On("ListScheduleEntries", ctx, suite.userID, false).Return(nil, nil).Once()

	entries, err := suite.service.ListScheduleEntries(ctx, suite.userID, false)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeactivateScheduleEntry Tests ---
func (suite *ScheduleEntryServiceTestSuite) TestDeactivateScheduleEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.ScheduleEntry{EntryID: entryID, UserID: suite.userID, IsActive: true}

	suite.mockRepo.On("FindScheduleEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateScheduleEntry", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateScheduleEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestScheduleEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleEntryServiceTestSuite))
}
