package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type span struct {
	start time.Time
	end   *time.Time
}

func (s span) Bounds() (time.Time, *time.Time) { return s.start, s.end }

func closedSpan(start time.Time, d time.Duration) span {
	end := start.Add(d)
	return span{start: start, end: &end}
}

var (
	july    = time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)
	october = time.Date(2025, time.October, 10, 12, 0, 0, 0, time.UTC)
)

func TestPolicy_IsReducedSchedule(t *testing.T) {
	p := DefaultPolicy()

	for m := time.January; m <= time.December; m++ {
		now := time.Date(2025, m, 1, 9, 0, 0, 0, time.UTC)
		want := m == time.July || m == time.August
		assert.Equal(t, want, p.IsReducedSchedule(now), "month %s", m)
	}
}

func TestTotalPauseDuration(t *testing.T) {
	p := DefaultPolicy()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		pauses   []span
		expected time.Duration
	}{
		{
			name:     "no pauses",
			now:      october,
			expected: 0,
		},
		{
			name:     "standard schedule counts the full pause",
			now:      october,
			pauses:   []span{closedSpan(base, 40*time.Minute)},
			expected: 40 * time.Minute,
		},
		{
			name:     "standard schedule counts short pauses too",
			now:      october,
			pauses:   []span{closedSpan(base, 5*time.Minute)},
			expected: 5 * time.Minute,
		},
		{
			name:     "reduced schedule subtracts the allowance",
			now:      july,
			pauses:   []span{closedSpan(base, 40*time.Minute)},
			expected: 25 * time.Minute,
		},
		{
			name:     "reduced schedule ignores pauses within the allowance",
			now:      july,
			pauses:   []span{closedSpan(base, 15*time.Minute), closedSpan(base.Add(time.Hour), 10*time.Minute)},
			expected: 0,
		},
		{
			name:     "allowance applies per pause",
			now:      july,
			pauses:   []span{closedSpan(base, 30*time.Minute), closedSpan(base.Add(time.Hour), 20*time.Minute)},
			expected: 20 * time.Minute,
		},
		{
			name:     "open pauses contribute nothing",
			now:      october,
			pauses:   []span{closedSpan(base, 10*time.Minute), {start: base.Add(time.Hour)}},
			expected: 10 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalPauseDuration(p, tt.now, tt.pauses))
		})
	}
}

func TestTotalPauseDuration_Monotonic(t *testing.T) {
	p := DefaultPolicy()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, now := range []time.Time{july, october} {
		previous := time.Duration(0)
		for minutes := 0; minutes <= 120; minutes++ {
			pauses := []span{
				closedSpan(base, time.Duration(minutes)*time.Minute),
				closedSpan(base.Add(3*time.Hour), 20*time.Minute),
			}
			got := TotalPauseDuration(p, now, pauses)
			assert.GreaterOrEqual(t, got, time.Duration(0))
			assert.GreaterOrEqual(t, got, previous)
			previous = got
		}
	}
}
