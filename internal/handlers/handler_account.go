package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/peraplan/peraplan_backend/internal/middleware"
)

// accountHandler holds dependencies for account routes.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes sets up the routes for account management.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccountByID)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new money account for the authenticated user.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create account", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves the authenticated user's active accounts.
// @Tags accounts
// @Produce json
// @Param limit query int false "Maximum accounts to return" default(20)
// @Param offset query int false "Number of accounts to skip" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccountByID godoc
// @Summary Get account by ID
// @Description Retrieves a specific account owned by the authenticated user.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccountByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account does not belong to user"})
		default:
			logger.Error("Failed to get account", "account_id", accountID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an existing account's details.
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update account", "account_id", accountID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account as inactive. Its history is retained.
// @Tags accounts
// @Param accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account already inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	accountID := c.Param("accountID")

	err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Account is already inactive"})
		default:
			logger.Error("Failed to deactivate account", "account_id", accountID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
