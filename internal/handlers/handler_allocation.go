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

// allocationHandler holds dependencies for allocation routes.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newAllocationHandler(allocationService portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{allocationService: allocationService}
}

// registerAllocationRoutes sets up the routes for allocation management.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.GET("/:allocationID", h.getAllocationByID)
		allocations.PUT("/:allocationID", h.updateAllocation)
		allocations.DELETE("/:allocationID", h.deactivateAllocation)
	}
}

// createAllocation godoc
// @Summary Create an allocation
// @Description Creates a savings pot, budget envelope, or goal within an account.
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Referenced account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account does not belong to user"})
		default:
			logger.Error("Failed to create allocation", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create allocation"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocations godoc
// @Summary List allocations
// @Description Retrieves the authenticated user's active allocations.
// @Tags allocations
// @Produce json
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [get]
func (h *allocationHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	allocations, err := h.allocationService.ListAllocations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list allocations", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list allocations"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAllocationsResponse{Allocations: dto.ToListAllocationResponse(allocations)})
}

// getAllocationByID godoc
// @Summary Get allocation by ID
// @Description Retrieves a specific allocation owned by the authenticated user.
// @Tags allocations
// @Produce json
// @Param allocationID path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID} [get]
func (h *allocationHandler) getAllocationByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	allocationID := c.Param("allocationID")

	allocation, err := h.allocationService.GetAllocationByID(c.Request.Context(), allocationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Allocation not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Allocation does not belong to user"})
		default:
			logger.Error("Failed to get allocation", "allocation_id", allocationID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve allocation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// updateAllocation godoc
// @Summary Update an allocation
// @Description Updates an existing allocation's details.
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocationID path string true "Allocation ID"
// @Param allocation body dto.UpdateAllocationRequest true "Fields to update"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID} [put]
func (h *allocationHandler) updateAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	allocationID := c.Param("allocationID")

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), allocationID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Allocation not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Allocation does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update allocation", "allocation_id", allocationID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update allocation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// deactivateAllocation godoc
// @Summary Deactivate an allocation
// @Description Marks an allocation as inactive.
// @Tags allocations
// @Param allocationID path string true "Allocation ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Allocation already inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID} [delete]
func (h *allocationHandler) deactivateAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	allocationID := c.Param("allocationID")

	err := h.allocationService.DeactivateAllocation(c.Request.Context(), allocationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Allocation not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Allocation does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Allocation is already inactive"})
		default:
			logger.Error("Failed to deactivate allocation", "allocation_id", allocationID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate allocation"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
