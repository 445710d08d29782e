package services

import (
	"context"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/dto"
)

// AllocationReaderSvc defines read operations for allocation data
type AllocationReaderSvc interface {
	// GetAllocationByID retrieves a specific allocation owned by the user.
	GetAllocationByID(ctx context.Context, allocationID string, userID string) (*domain.Allocation, error)

	// ListAllocations retrieves the user's active allocations.
	ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error)
}

// AllocationWriterSvc defines write operations for allocation data
type AllocationWriterSvc interface {
	// CreateAllocation persists a new allocation for the user. Budget
	// allocations without explicit period bounds get defaults for their
	// frequency.
	CreateAllocation(ctx context.Context, req dto.CreateAllocationRequest, userID string) (*domain.Allocation, error)

	// UpdateAllocation updates an existing allocation's details.
	UpdateAllocation(ctx context.Context, allocationID string, req dto.UpdateAllocationRequest, userID string) (*domain.Allocation, error)

	// DeactivateAllocation marks an allocation as inactive.
	DeactivateAllocation(ctx context.Context, allocationID string, userID string) error
}

// AllocationSvcFacade combines all allocation-related service interfaces
type AllocationSvcFacade interface {
	AllocationReaderSvc
	AllocationWriterSvc
}
