package timeutil

import (
	"time"
)

// Policy describes the working schedule: which months run the reduced
// timetable, how long each day must be, and the pause allowance.
type Policy struct {
	ReducedMonths        []time.Month
	StandardWorkDuration time.Duration
	ReducedWorkDuration  time.Duration
	// PauseAllowance is free pause time per interval under the reduced
	// schedule, and the default expected pause added to a fresh estimate.
	PauseAllowance time.Duration
}

// DefaultPolicy is 8h days, with 7h days and a 15 minute allowance in July and August
func DefaultPolicy() Policy {
	return Policy{
		ReducedMonths:        []time.Month{time.July, time.August},
		StandardWorkDuration: 8 * time.Hour,
		ReducedWorkDuration:  7 * time.Hour,
		PauseAllowance:       15 * time.Minute,
	}
}

// IsReducedSchedule reports whether now falls in a reduced-schedule month
func (p Policy) IsReducedSchedule(now time.Time) bool {
	month := now.Month()
	for _, m := range p.ReducedMonths {
		if m == month {
			return true
		}
	}
	return false
}

// Span is anything with a start and an optional end
type Span interface {
	Bounds() (start time.Time, end *time.Time)
}

// TotalPauseDuration sums closed pauses under the schedule in force at now.
// Open pauses count as zero. Under the reduced schedule only the part of each
// pause beyond the allowance counts.
func TotalPauseDuration[S Span](p Policy, now time.Time, pauses []S) time.Duration {
	reduced := p.IsReducedSchedule(now)

	var total time.Duration
	for _, pause := range pauses {
		start, end := pause.Bounds()
		if end == nil {
			continue
		}
		duration := end.Sub(start)
		if reduced {
			duration -= p.PauseAllowance
		}
		if duration > 0 {
			total += duration
		}
	}
	return total
}
