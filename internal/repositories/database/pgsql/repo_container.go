package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:       newPgxAccountRepository(dbPool),
		CategoryRepo:      newPgxCategoryRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		ScheduleEntryRepo: newPgxScheduleEntryRepository(dbPool),
		AllocationRepo:    newPgxAllocationRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
	}
}
