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

// userHandler holds dependencies for user routes.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(userService portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: userService}
}

// registerUserRoutes sets up the routes for user management.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getCurrentUser)
		users.GET("/:userID", h.getUserByID)
		users.PUT("/:userID", h.updateUser)
		users.DELETE("/:userID", h.deleteUser)
	}
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Description Retrieves the profile of the authenticated user.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to get current user", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUserByID godoc
// @Summary Get user by ID
// @Description Retrieves a user's public profile.
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUserByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	userID := c.Param("userID")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to get user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates a user's profile. Users may only update themselves.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	userID := c.Param("userID")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot update another user"})
		default:
			logger.Error("Failed to update user", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes a user. Users may only delete themselves.
// @Tags users
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	userID := c.Param("userID")

	err := h.userService.DeleteUser(c.Request.Context(), userID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot delete another user"})
		default:
			logger.Error("Failed to delete user", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete user"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
