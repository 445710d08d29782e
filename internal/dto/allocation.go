package dto

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAllocationRequest defines the data needed to create an allocation.
type CreateAllocationRequest struct {
	AccountID      string                `json:"accountID" binding:"required"`
	Name           string                `json:"name" binding:"required"`
	AllocationType domain.AllocationType `json:"allocationType" binding:"required,oneof=savings budget goal"`
	Description    string                `json:"description"`

	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"` // Defaults to zero
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget"`
	CurrencyCode  string           `json:"currencyCode" binding:"required,len=3"`

	TargetDate *time.Time `json:"targetDate"`

	PeriodFrequency domain.PeriodFrequency `json:"periodFrequency" binding:"omitempty,oneof=daily weekly monthly quarterly"`
	PeriodStart     *time.Time             `json:"periodStart"`
	PeriodEnd       *time.Time             `json:"periodEnd"`
}

// UpdateAllocationRequest defines the data allowed for updating an allocation.
type UpdateAllocationRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget"`
	TargetDate    *time.Time       `json:"targetDate"`

	PeriodFrequency *domain.PeriodFrequency `json:"periodFrequency" binding:"omitempty,oneof=daily weekly monthly quarterly"`
	PeriodStart     *time.Time              `json:"periodStart"`
	PeriodEnd       *time.Time              `json:"periodEnd"`

	IsActive *bool `json:"isActive"`
}

// AllocationResponse defines the data returned for an allocation.
type AllocationResponse struct {
	AllocationID   string                `json:"allocationID"`
	AccountID      string                `json:"accountID"`
	Name           string                `json:"name"`
	AllocationType domain.AllocationType `json:"allocationType"`
	Description    string                `json:"description"`

	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount decimal.Decimal  `json:"currentAmount"`
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget,omitempty"`
	CurrencyCode  string           `json:"currencyCode"`

	TargetDate *time.Time `json:"targetDate,omitempty"`

	PeriodFrequency domain.PeriodFrequency `json:"periodFrequency,omitempty"`
	PeriodStart     *time.Time             `json:"periodStart,omitempty"`
	PeriodEnd       *time.Time             `json:"periodEnd,omitempty"`

	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToAllocationResponse converts a domain.Allocation to AllocationResponse DTO
func ToAllocationResponse(alloc *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:    alloc.AllocationID,
		AccountID:       alloc.AccountID,
		Name:            alloc.Name,
		AllocationType:  alloc.AllocationType,
		Description:     alloc.Description,
		TargetAmount:    alloc.TargetAmount,
		CurrentAmount:   alloc.CurrentAmount,
		MonthlyTarget:   alloc.MonthlyTarget,
		CurrencyCode:    alloc.CurrencyCode,
		TargetDate:      alloc.TargetDate,
		PeriodFrequency: alloc.PeriodFrequency,
		PeriodStart:     alloc.PeriodStart,
		PeriodEnd:       alloc.PeriodEnd,
		IsActive:        alloc.IsActive,
		CreatedAt:       alloc.CreatedAt,
		LastUpdatedAt:   alloc.LastUpdatedAt,
	}
}

// ToListAllocationResponse converts a slice of domain.Allocation to a slice of AllocationResponse DTOs
func ToListAllocationResponse(allocs []domain.Allocation) []AllocationResponse {
	res := make([]AllocationResponse, len(allocs))
	for i := range allocs {
		res[i] = ToAllocationResponse(&allocs[i])
	}
	return res
}

// ListAllocationsResponse wraps the list of allocations.
type ListAllocationsResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
}
