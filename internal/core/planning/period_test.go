package planning_test

import (
	"testing"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/core/planning"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPeriod(t *testing.T) {
	tests := []struct {
		name      string
		freq      domain.PeriodFrequency
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "daily covers the anchor day",
			freq:      domain.PeriodDaily,
			anchor:    time.Date(2025, time.March, 14, 16, 45, 0, 0, time.UTC),
			wantStart: date(2025, time.March, 14),
			wantEnd:   date(2025, time.March, 15),
		},
		{
			name:      "weekly aligns to the previous Sunday",
			freq:      domain.PeriodWeekly,
			anchor:    date(2025, time.March, 12), // a Wednesday
			wantStart: date(2025, time.March, 9),
			wantEnd:   date(2025, time.March, 16),
		},
		{
			name:      "weekly anchored on a Sunday stays put",
			freq:      domain.PeriodWeekly,
			anchor:    date(2025, time.March, 9),
			wantStart: date(2025, time.March, 9),
			wantEnd:   date(2025, time.March, 16),
		},
		{
			name:      "monthly in March runs March 1 to April 1",
			freq:      domain.PeriodMonthly,
			anchor:    date(2025, time.March, 17),
			wantStart: date(2025, time.March, 1),
			wantEnd:   date(2025, time.April, 1),
		},
		{
			name:      "quarterly in May snaps to Q2",
			freq:      domain.PeriodQuarterly,
			anchor:    date(2025, time.May, 20),
			wantStart: date(2025, time.April, 1),
			wantEnd:   date(2025, time.July, 1),
		},
		{
			name:      "quarterly in December snaps to Q4",
			freq:      domain.PeriodQuarterly,
			anchor:    date(2025, time.December, 31),
			wantStart: date(2025, time.October, 1),
			wantEnd:   date(2026, time.January, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := planning.DefaultPeriod(tt.freq, tt.anchor)
			assert.True(t, start.Equal(tt.wantStart), "start: got %s, want %s", start, tt.wantStart)
			assert.True(t, end.Equal(tt.wantEnd), "end: got %s, want %s", end, tt.wantEnd)
			assert.True(t, end.After(start))
		})
	}
}

func TestRecomputeEnd_AppliesOffsetToArbitraryStart(t *testing.T) {
	// Editing a period's start keeps the envelope length consistent with its
	// cadence, even for starts that are not canonical boundaries.
	start := date(2025, time.March, 17)

	assert.True(t, planning.RecomputeEnd(start, domain.PeriodDaily).Equal(date(2025, time.March, 18)))
	assert.True(t, planning.RecomputeEnd(start, domain.PeriodWeekly).Equal(date(2025, time.March, 24)))
	assert.True(t, planning.RecomputeEnd(start, domain.PeriodMonthly).Equal(date(2025, time.April, 17)))
	assert.True(t, planning.RecomputeEnd(start, domain.PeriodQuarterly).Equal(date(2025, time.June, 17)))
}
