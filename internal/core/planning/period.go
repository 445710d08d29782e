package planning

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// DefaultPeriod computes the half-open [start, end) window a budget envelope
// covers when anchored at the given date:
//
//	daily     -> the anchor's calendar day
//	weekly    -> the week containing the anchor, starting Sunday
//	monthly   -> the anchor's calendar month
//	quarterly -> the anchor's three-month quarter (Jan/Apr/Jul/Oct)
//
// An unknown frequency falls back to monthly.
func DefaultPeriod(freq domain.PeriodFrequency, anchor time.Time) (time.Time, time.Time) {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())

	var start time.Time
	switch freq {
	case domain.PeriodDaily:
		start = day
	case domain.PeriodWeekly:
		start = day.AddDate(0, 0, -int(day.Weekday()))
	case domain.PeriodQuarterly:
		quarterMonth := time.Month((int(anchor.Month())-1)/3*3 + 1)
		start = time.Date(anchor.Year(), quarterMonth, 1, 0, 0, 0, 0, anchor.Location())
	default: // monthly
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	}
	return start, RecomputeEnd(start, freq)
}

// RecomputeEnd applies the frequency's offset to an arbitrary start date, so
// an edited period keeps its cadence-consistent length. The result is always
// strictly after start.
func RecomputeEnd(start time.Time, freq domain.PeriodFrequency) time.Time {
	switch freq {
	case domain.PeriodDaily:
		return start.AddDate(0, 0, 1)
	case domain.PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case domain.PeriodQuarterly:
		return start.AddDate(0, 3, 0)
	default: // monthly
		return start.AddDate(0, 1, 0)
	}
}
