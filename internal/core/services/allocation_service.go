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
	"github.com/peraplan/peraplan_backend/internal/core/planning"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// allocationService implements portssvc.AllocationSvcFacade.
type allocationService struct {
	BaseService
	allocationRepo portsrepo.AllocationRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	now            func() time.Time
}

// NewAllocationService creates a new allocation service.
func NewAllocationService(repo portsrepo.AllocationRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.AllocationSvcFacade {
	return &allocationService{
		allocationRepo: repo,
		accountRepo:    accountRepo,
		now:            time.Now,
	}
}

func (s *allocationService) findOwnedAllocation(ctx context.Context, allocationID, userID string) (*domain.Allocation, error) {
	alloc, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find allocation", slog.String("allocation_id", allocationID))
		}
		return nil, err
	}
	if alloc.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return alloc, nil
}

// validatePeriod checks the budget period bounds and fills defaults for the
// allocation's frequency when they are missing.
func (s *allocationService) validatePeriod(alloc *domain.Allocation) error {
	if alloc.AllocationType != domain.AllocationBudget {
		return nil
	}
	if alloc.PeriodFrequency == "" {
		alloc.PeriodFrequency = domain.PeriodMonthly
	}

	switch {
	case alloc.PeriodStart == nil && alloc.PeriodEnd == nil:
		start, end := planning.DefaultPeriod(alloc.PeriodFrequency, s.now())
		alloc.PeriodStart = &start
		alloc.PeriodEnd = &end
	case alloc.PeriodStart != nil && alloc.PeriodEnd == nil:
		end := planning.RecomputeEnd(*alloc.PeriodStart, alloc.PeriodFrequency)
		alloc.PeriodEnd = &end
	case alloc.PeriodStart == nil:
		return fmt.Errorf("%w: periodStart is required when periodEnd is set", apperrors.ErrValidation)
	}

	if !alloc.PeriodEnd.After(*alloc.PeriodStart) {
		return fmt.Errorf("%w: periodEnd must be after periodStart", apperrors.ErrValidation)
	}
	return nil
}

func (s *allocationService) CreateAllocation(ctx context.Context, req dto.CreateAllocationRequest, userID string) (*domain.Allocation, error) {
	// The linked account must exist and belong to the user.
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	now := s.now()
	current := decimal.Zero
	if req.CurrentAmount != nil {
		current = *req.CurrentAmount
	}

	alloc := domain.Allocation{
		AllocationID:    uuid.NewString(),
		UserID:          userID,
		AccountID:       req.AccountID,
		Name:            req.Name,
		AllocationType:  req.AllocationType,
		Description:     req.Description,
		TargetAmount:    req.TargetAmount,
		CurrentAmount:   current,
		MonthlyTarget:   req.MonthlyTarget,
		CurrencyCode:    req.CurrencyCode,
		TargetDate:      req.TargetDate,
		PeriodFrequency: req.PeriodFrequency,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.validatePeriod(&alloc); err != nil {
		return nil, err
	}

	if err := s.allocationRepo.SaveAllocation(ctx, alloc); err != nil {
		s.LogError(ctx, err, "Failed to save allocation", slog.String("allocation_id", alloc.AllocationID))
		return nil, err
	}

	s.LogInfo(ctx, "Allocation created", slog.String("allocation_id", alloc.AllocationID))
	return &alloc, nil
}

func (s *allocationService) GetAllocationByID(ctx context.Context, allocationID string, userID string) (*domain.Allocation, error) {
	return s.findOwnedAllocation(ctx, allocationID, userID)
}

func (s *allocationService) ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	allocs, err := s.allocationRepo.ListAllocations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allocations")
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	if allocs == nil {
		allocs = []domain.Allocation{}
	}
	return allocs, nil
}

func (s *allocationService) UpdateAllocation(ctx context.Context, allocationID string, req dto.UpdateAllocationRequest, userID string) (*domain.Allocation, error) {
	alloc, err := s.findOwnedAllocation(ctx, allocationID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		alloc.Name = *req.Name
	}
	if req.Description != nil {
		alloc.Description = *req.Description
	}
	if req.TargetAmount != nil {
		alloc.TargetAmount = req.TargetAmount
	}
	if req.CurrentAmount != nil {
		alloc.CurrentAmount = *req.CurrentAmount
	}
	if req.MonthlyTarget != nil {
		alloc.MonthlyTarget = req.MonthlyTarget
	}
	if req.TargetDate != nil {
		alloc.TargetDate = req.TargetDate
	}
	if req.PeriodFrequency != nil {
		alloc.PeriodFrequency = *req.PeriodFrequency
		// A frequency change recomputes the period end from the current start.
		if req.PeriodEnd == nil && alloc.PeriodStart != nil {
			end := planning.RecomputeEnd(*alloc.PeriodStart, alloc.PeriodFrequency)
			alloc.PeriodEnd = &end
		}
	}
	if req.PeriodStart != nil {
		alloc.PeriodStart = req.PeriodStart
		if req.PeriodEnd == nil {
			end := planning.RecomputeEnd(*alloc.PeriodStart, alloc.PeriodFrequency)
			alloc.PeriodEnd = &end
		}
	}
	if req.PeriodEnd != nil {
		alloc.PeriodEnd = req.PeriodEnd
	}
	if req.IsActive != nil {
		alloc.IsActive = *req.IsActive
	}

	if err := s.validatePeriod(alloc); err != nil {
		return nil, err
	}

	alloc.LastUpdatedAt = s.now()
	alloc.LastUpdatedBy = userID

	if err := s.allocationRepo.UpdateAllocation(ctx, *alloc); err != nil {
		s.LogError(ctx, err, "Failed to update allocation", slog.String("allocation_id", allocationID))
		return nil, err
	}

	s.LogInfo(ctx, "Allocation updated", slog.String("allocation_id", allocationID))
	return alloc, nil
}

func (s *allocationService) DeactivateAllocation(ctx context.Context, allocationID string, userID string) error {
	if _, err := s.findOwnedAllocation(ctx, allocationID, userID); err != nil {
		return err
	}

	if err := s.allocationRepo.DeactivateAllocation(ctx, allocationID, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate allocation", slog.String("allocation_id", allocationID))
		}
		return err
	}

	s.LogInfo(ctx, "Allocation deactivated", slog.String("allocation_id", allocationID))
	return nil
}
