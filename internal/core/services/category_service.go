package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
)

// categoryService implements portssvc.CategorySvcFacade.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

func (s *categoryService) findOwnedCategory(ctx context.Context, categoryID, userID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	now := time.Now()

	isExpense := true
	if req.IsExpense != nil {
		isExpense = *req.IsExpense
	}

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsExpense:   isExpense,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	return s.findOwnedCategory(ctx, categoryID, userID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	category, err := s.findOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsExpense != nil {
		category.IsExpense = *req.IsExpense
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return category, nil
}

func (s *categoryService) DeactivateCategory(ctx context.Context, categoryID string, userID string) error {
	if _, err := s.findOwnedCategory(ctx, categoryID, userID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeactivateCategory(ctx, categoryID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate category", slog.String("category_id", categoryID))
		}
		return err
	}

	s.LogInfo(ctx, "Category deactivated", slog.String("category_id", categoryID))
	return nil
}
