package planning

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// StepCadence returns the date one cadence period after t.
// Month and year arithmetic follows time.AddDate calendar rollover, so
// stepping from Jan 31 by one month lands on Mar 2/3. That is accepted
// behavior for schedule projection, not corrected.
func StepCadence(t time.Time, c domain.Cadence) time.Time {
	switch c {
	case domain.CadenceMonthly:
		return t.AddDate(0, 1, 0)
	case domain.CadenceQuarterly:
		return t.AddDate(0, 3, 0)
	case domain.CadenceSemiAnnual:
		return t.AddDate(0, 6, 0)
	case domain.CadenceAnnual:
		return t.AddDate(1, 0, 0)
	}
	// Unrecognized cadence cannot advance the date; callers detect the
	// unchanged result and stop generating.
	return t
}
