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
	"github.com/peraplan/peraplan_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider string, providerID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "testuser",
		Password: "password123",
		Name:     "Test User",
		Email:    "Test@Example.com",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == req.Username &&
			user.Email == "test@example.com" &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			user.CreatedBy == user.UserID
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.Equal(req.Username, createdUser.Username)
	suite.NotEmpty(createdUser.UserID)
	suite.Equal(domain.ProviderLocal, createdUser.AuthProvider)
	suite.True(utils.CheckPasswordHash(req.Password, createdUser.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "taken", Password: "password123", Name: "Dup"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- FindOrCreateGoogleUser Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingUser() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderID: "google-sub-1"}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, "google", "google-sub-1").Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{ID: "google-sub-1"})

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesOnFirstLogin() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{
		ID:            "google-sub-2",
		Email:         "New@Example.com",
		Name:          "New Person",
		VerifiedEmail: true,
	}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, "google", "google-sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.AuthProvider == domain.ProviderGoogle &&
			user.ProviderID == "google-sub-2" &&
			user.Email == "new@example.com" &&
			user.IsVerified
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("New Person", user.Name)
	suite.Empty(user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Forbidden() {
	ctx := context.Background()

	user, err := suite.service.UpdateUser(ctx, "user-a", dto.UpdateUserRequest{}, "user-b")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Renamed"
	existing := &domain.User{UserID: userID, Name: "Old Name"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == userID && user.Name == newName && user.LastUpdatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, userID)

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "alice", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "alice", "battery-staple")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_ExternalProviderUser() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "bob", AuthProvider: domain.ProviderGoogle}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "bob", "anything")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Refresh token Tests ---
func (suite *UserServiceTestSuite) TestClearRefreshToken() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, "", (*time.Time)(nil)).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Forbidden() {
	ctx := context.Background()

	err := suite.service.DeleteUser(ctx, "user-a", "user-b")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
