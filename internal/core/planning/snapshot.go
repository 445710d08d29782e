package planning

import (
	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// Snapshot is the immutable view of a user's records that every planning
// computation works from. Callers assemble it from current data and pass it
// in; the planning package holds no state of its own and never mutates the
// snapshot, so recomputing with the same snapshot and the same now yields
// identical output.
type Snapshot struct {
	Accounts     []domain.Account
	Categories   []domain.Category
	Transactions []domain.Transaction
	Entries      []domain.ScheduleEntry
	Allocations  []domain.Allocation
}

// AccountByID returns the snapshot account with the given ID, if present.
func (s Snapshot) AccountByID(id string) (domain.Account, bool) {
	for _, a := range s.Accounts {
		if a.AccountID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

// CategoryByID returns the snapshot category with the given ID, if present.
func (s Snapshot) CategoryByID(id string) (domain.Category, bool) {
	for _, c := range s.Categories {
		if c.CategoryID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}
