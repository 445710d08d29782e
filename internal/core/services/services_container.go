package services

import (
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.AllocationRepo)
	container.ScheduleEntry = NewScheduleEntryService(repos.ScheduleEntryRepo)
	container.Allocation = NewAllocationService(repos.AllocationRepo, repos.AccountRepo)
	container.Planning = NewPlanningService(repos)
	container.User = NewUserService(repos.UserRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade       = (*accountService)(nil)
	_ portssvc.CategorySvcFacade      = (*categoryService)(nil)
	_ portssvc.TransactionSvcFacade   = (*transactionService)(nil)
	_ portssvc.ScheduleEntrySvcFacade = (*scheduleEntryService)(nil)
	_ portssvc.AllocationSvcFacade    = (*allocationService)(nil)
	_ portssvc.PlanningSvcFacade      = (*planningService)(nil)
	_ portssvc.UserSvcFacade          = (*userService)(nil)
)
