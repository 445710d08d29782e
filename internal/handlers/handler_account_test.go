package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/peraplan/peraplan_backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "peraplan-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	registerAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	userID := uuid.NewString()
	expected := []domain.Account{
		{
			AccountID:    uuid.NewString(),
			UserID:       userID,
			Name:         "Daily Checking",
			AccountType:  domain.Checking,
			CurrencyCode: "USD",
			Balance:      decimal.NewFromInt(1500),
			IsActive:     true,
		},
		{
			AccountID:    uuid.NewString(),
			UserID:       userID,
			Name:         "Emergency Fund",
			AccountType:  domain.Savings,
			CurrencyCode: "USD",
			Balance:      decimal.NewFromInt(9000),
			IsActive:     true,
		},
	}

	suite.mockAccountService.On("ListAccounts", mock.Anything, userID, 10, 0).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts?limit=10", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.Equal(expected[0].AccountID, resp.Accounts[0].AccountID)
	suite.Equal(expected[1].Name, resp.Accounts[1].Name)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_MissingToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Name:         "Travel Card",
		AccountType:  domain.CreditAccount,
		CurrencyCode: "USD",
	}
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         reqBody.Name,
		AccountType:  domain.CreditAccount,
		CurrencyCode: "USD",
		CreditLimit:  decimal.NewFromInt(5000),
		IsActive:     true,
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.Name == reqBody.Name && r.AccountType == domain.CreditAccount
	}), userID).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	userID := uuid.NewString()

	// Missing required name and currency.
	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", userID, gin.H{"accountType": "cash"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccountByID_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountByID_Forbidden() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID, userID).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, userID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_AlreadyInactive() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, accountID, userID).
		Return(apperrors.ErrValidation).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, accountID, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
