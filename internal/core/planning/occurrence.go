package planning

import (
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// DefaultMaxIterations bounds the work of a single projection run. A year of
// monthly occurrences needs 12 steps, so 24 leaves comfortable headroom for
// stale anchors without letting a bad entry spin.
const DefaultMaxIterations = 24

// Occurrences expands a schedule entry into the projected dates that fall
// inside [rangeStart, rangeEnd], starting from the entry's stored anchor.
// The entry is never mutated; calling this twice with the same arguments
// returns the same dates.
//
// maxIterations caps the number of candidate dates examined regardless of how
// far in the past the anchor lies; values <= 0 fall back to
// DefaultMaxIterations.
func Occurrences(entry domain.ScheduleEntry, rangeStart, rangeEnd time.Time, maxIterations int) []time.Time {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	current := entry.NextOccurrence
	if current.IsZero() {
		return nil
	}

	// remaining < 0 means unbounded.
	remaining := -1
	if entry.EndMode == domain.EndAfterOccurrences {
		remaining = entry.MaxOccurrences
		if remaining < 1 {
			return nil
		}
	}

	var result []time.Time
	for i := 0; i < maxIterations && !current.After(rangeEnd); i++ {
		if entry.EndMode == domain.EndOnDate && entry.EndDate != nil && current.After(*entry.EndDate) {
			break
		}

		if !current.Before(rangeStart) {
			result = append(result, current)
		}

		// The counter decrements for every generated step up to rangeEnd,
		// including dates skipped for falling before rangeStart.
		if remaining > 0 {
			remaining--
			if remaining == 0 {
				break
			}
		}

		next := StepCadence(current, entry.Cadence)
		if next.Equal(current) {
			// A step that fails to advance would loop forever.
			break
		}
		current = next
	}
	return result
}
