package planning_test

import (
	"testing"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/core/planning"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStepCadence(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		cadence domain.Cadence
		want    time.Time
	}{
		{"monthly", date(2025, time.March, 15), domain.CadenceMonthly, date(2025, time.April, 15)},
		{"quarterly", date(2025, time.March, 15), domain.CadenceQuarterly, date(2025, time.June, 15)},
		{"semi annual", date(2025, time.March, 15), domain.CadenceSemiAnnual, date(2025, time.September, 15)},
		{"annual", date(2025, time.March, 15), domain.CadenceAnnual, date(2026, time.March, 15)},
		{"monthly across year end", date(2025, time.December, 5), domain.CadenceMonthly, date(2026, time.January, 5)},
		// Calendar rollover: Jan 31 + 1 month lands in March.
		{"monthly rollover from the 31st", date(2025, time.January, 31), domain.CadenceMonthly, date(2025, time.March, 3)},
		{"annual rollover from leap day", date(2024, time.February, 29), domain.CadenceAnnual, date(2025, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planning.StepCadence(tt.start, tt.cadence)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestStepCadence_UnknownCadenceDoesNotAdvance(t *testing.T) {
	start := date(2025, time.March, 15)
	got := planning.StepCadence(start, domain.Cadence("fortnightly"))
	assert.True(t, got.Equal(start))
}
