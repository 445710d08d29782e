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

// scheduleEntryHandler holds dependencies for recurring entry routes.
type scheduleEntryHandler struct {
	scheduleEntryService portssvc.ScheduleEntrySvcFacade
}

func newScheduleEntryHandler(scheduleEntryService portssvc.ScheduleEntrySvcFacade) *scheduleEntryHandler {
	return &scheduleEntryHandler{scheduleEntryService: scheduleEntryService}
}

// registerScheduleEntryRoutes sets up the routes for recurring entry management.
func registerScheduleEntryRoutes(rg *gin.RouterGroup, scheduleEntryService portssvc.ScheduleEntrySvcFacade) {
	h := newScheduleEntryHandler(scheduleEntryService)

	entries := rg.Group("/schedule-entries")
	{
		entries.POST("", h.createScheduleEntry)
		entries.GET("", h.listScheduleEntries)
		entries.GET("/:entryID", h.getScheduleEntryByID)
		entries.PUT("/:entryID", h.updateScheduleEntry)
		entries.DELETE("/:entryID", h.deactivateScheduleEntry)
	}
}

// createScheduleEntry godoc
// @Summary Create a recurring entry
// @Description Creates a recurring income or expense schedule for the authenticated user.
// @Tags schedule-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateScheduleEntryRequest true "Recurring entry details"
// @Success 201 {object} dto.ScheduleEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedule-entries [post]
func (h *scheduleEntryHandler) createScheduleEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.scheduleEntryService.CreateScheduleEntry(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create schedule entry", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create schedule entry"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToScheduleEntryResponse(entry))
}

// listScheduleEntries godoc
// @Summary List recurring entries
// @Description Retrieves the authenticated user's recurring entries.
// @Tags schedule-entries
// @Produce json
// @Param includeInactive query bool false "Include deactivated entries" default(false)
// @Success 200 {object} dto.ListScheduleEntriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedule-entries [get]
func (h *scheduleEntryHandler) listScheduleEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	includeInactive := c.Query("includeInactive") == "true"

	entries, err := h.scheduleEntryService.ListScheduleEntries(c.Request.Context(), userID, includeInactive)
	if err != nil {
		logger.Error("Failed to list schedule entries", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list schedule entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListScheduleEntriesResponse{Entries: dto.ToListScheduleEntryResponse(entries)})
}

// getScheduleEntryByID godoc
// @Summary Get recurring entry by ID
// @Description Retrieves a specific recurring entry owned by the authenticated user.
// @Tags schedule-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.ScheduleEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedule-entries/{entryID} [get]
func (h *scheduleEntryHandler) getScheduleEntryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	entryID := c.Param("entryID")

	entry, err := h.scheduleEntryService.GetScheduleEntryByID(c.Request.Context(), entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Schedule entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Schedule entry does not belong to user"})
		default:
			logger.Error("Failed to get schedule entry", "entry_id", entryID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve schedule entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleEntryResponse(entry))
}

// updateScheduleEntry godoc
// @Summary Update a recurring entry
// @Description Updates an existing recurring entry's details.
// @Tags schedule-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateScheduleEntryRequest true "Fields to update"
// @Success 200 {object} dto.ScheduleEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedule-entries/{entryID} [put]
func (h *scheduleEntryHandler) updateScheduleEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	entryID := c.Param("entryID")

	var req dto.UpdateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.scheduleEntryService.UpdateScheduleEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Schedule entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Schedule entry does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update schedule entry", "entry_id", entryID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update schedule entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleEntryResponse(entry))
}

// deactivateScheduleEntry godoc
// @Summary Deactivate a recurring entry
// @Description Marks a recurring entry as inactive. It stops producing occurrences.
// @Tags schedule-entries
// @Param entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry already inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /schedule-entries/{entryID} [delete]
func (h *scheduleEntryHandler) deactivateScheduleEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	entryID := c.Param("entryID")

	err := h.scheduleEntryService.DeactivateScheduleEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Schedule entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Schedule entry does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Schedule entry is already inactive"})
		default:
			logger.Error("Failed to deactivate schedule entry", "entry_id", entryID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate schedule entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
