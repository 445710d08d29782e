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

// categoryHandler holds dependencies for category routes.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(categoryService portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: categoryService}
}

// registerCategoryRoutes sets up the routes for category management.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.GET("/:categoryID", h.getCategoryByID)
		categories.PUT("/:categoryID", h.updateCategory)
		categories.DELETE("/:categoryID", h.deactivateCategory)
	}
}

// createCategory godoc
// @Summary Create a new category
// @Description Creates a new transaction category for the authenticated user.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create category", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves the authenticated user's active categories.
// @Tags categories
// @Produce json
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: dto.ToListCategoryResponse(categories)})
}

// getCategoryByID godoc
// @Summary Get category by ID
// @Description Retrieves a specific category owned by the authenticated user.
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [get]
func (h *categoryHandler) getCategoryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	categoryID := c.Param("categoryID")

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), categoryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Category does not belong to user"})
		default:
			logger.Error("Failed to get category", "category_id", categoryID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve category"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a category
// @Description Updates an existing category's details.
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	categoryID := c.Param("categoryID")

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Category does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update category", "category_id", categoryID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update category"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deactivateCategory godoc
// @Summary Deactivate a category
// @Description Marks a category as inactive. Existing transactions keep the reference.
// @Tags categories
// @Param categoryID path string true "Category ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Category already inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deactivateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	categoryID := c.Param("categoryID")

	err := h.categoryService.DeactivateCategory(c.Request.Context(), categoryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Category does not belong to user"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Category is already inactive"})
		default:
			logger.Error("Failed to deactivate category", "category_id", categoryID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
