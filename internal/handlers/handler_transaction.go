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

// transactionHandler holds dependencies for transaction routes.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: transactionService}
}

// registerTransactionRoutes sets up the routes for transaction management.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransactionByID)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a debit, credit, or transfer and applies its balance effect atomically.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Referenced account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account does not belong to user"})
		default:
			logger.Error("Failed to create transaction", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves the user's transactions, newest first, with optional filters.
// @Tags transactions
// @Produce json
// @Param accountID query string false "Filter by account (either leg of a transfer)"
// @Param categoryID query string false "Filter by category"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Maximum transactions to return" default(50)
// @Param offset query int false "Number of transactions to skip" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list transactions", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)})
}

// getTransactionByID godoc
// @Summary Get transaction by ID
// @Description Retrieves a specific transaction owned by the authenticated user.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Transaction does not belong to user"})
		default:
			logger.Error("Failed to get transaction", "transaction_id", transactionID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates a transaction, reversing the old balance effect and applying the new one.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Transaction does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update transaction", "transaction_id", transactionID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and reverses its balance effect.
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	transactionID := c.Param("transactionID")

	err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Transaction does not belong to user"})
		default:
			logger.Error("Failed to delete transaction", "transaction_id", transactionID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete transaction"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
