package repositories

import (
	"context"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationReader defines read operations for allocation data
type AllocationReader interface {
	// FindAllocationByID retrieves a specific allocation by its unique identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error)

	// ListAllocations retrieves all active allocations for a user.
	ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error)
}

// AllocationWriter defines write operations for allocation data
type AllocationWriter interface {
	// SaveAllocation persists a new allocation.
	SaveAllocation(ctx context.Context, allocation domain.Allocation) error

	// UpdateAllocation updates an existing allocation's details.
	UpdateAllocation(ctx context.Context, allocation domain.Allocation) error

	// AdjustAllocationAmount applies a delta to an allocation's current amount.
	AdjustAllocationAmount(ctx context.Context, allocationID string, delta decimal.Decimal, userID string, now time.Time) error

	// DeactivateAllocation marks an allocation as inactive.
	DeactivateAllocation(ctx context.Context, allocationID string, userID string, now time.Time) error
}

// AllocationRepositoryFacade combines all allocation-related repository interfaces
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
}
