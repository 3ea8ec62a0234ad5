// Package workday derives the required hours, estimated exit time and
// worked/owed balance of a day record. It never performs I/O.
package workday

import (
	"errors"
	"time"

	"fichaje/internal/domain"
	"fichaje/internal/timeutil"
)

// ErrInsufficientData is returned when a summary is requested before the day has started
var ErrInsufficientData = errors.New("insufficient data: day has not started")

const secondsPerDay = 24 * 60 * 60

// Balance is the signed difference between worked and required time
type Balance struct {
	Worked   time.Duration
	Required time.Duration
	Delta    time.Duration
}

// IsSurplus is true only for a strictly positive balance; zero counts as a deficit
func (b Balance) IsSurplus() bool {
	return b.Delta > 0
}

// Minutes is the magnitude of the balance in whole minutes, rounded down
func (b Balance) Minutes() int {
	d := b.Delta
	if d < 0 {
		d = -d
	}
	return int(d / time.Minute)
}

// Label is "extra" for a surplus and "faltante" otherwise
func (b Balance) Label() string {
	if b.IsSurplus() {
		return "extra"
	}
	return "faltante"
}

// Summary is the live or final picture of one day
type Summary struct {
	Start         time.Time
	End           time.Time
	Closed        bool
	TotalPause    time.Duration
	Worked        time.Duration
	EstimatedExit time.Time
	Balance       *Balance
}

// WorkedClock splits the worked time into hours and minutes. Seconds are
// taken modulo one day and floored, so negative spans wrap instead of
// producing negative figures.
func (s Summary) WorkedClock() (hours, minutes int) {
	secs := floorSeconds(s.Worked) % secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	total := int(secs / 60)
	return total / 60, total % 60
}

func floorSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d < 0 && d%time.Second != 0 {
		secs--
	}
	return secs
}

// Calculator applies the schedule policy at the moment of calculation
type Calculator struct {
	clock  timeutil.Clock
	policy timeutil.Policy
}

// NewCalculator creates a calculator reading "now" from clock
func NewCalculator(clock timeutil.Clock, policy timeutil.Policy) *Calculator {
	return &Calculator{clock: clock, policy: policy}
}

// Policy returns the schedule policy in use
func (c *Calculator) Policy() timeutil.Policy {
	return c.policy
}

// IsReducedSchedule reports whether today runs the reduced timetable
func (c *Calculator) IsReducedSchedule() bool {
	return c.policy.IsReducedSchedule(c.clock.Now())
}

// RequiredWorkDuration is the length of a full day under the schedule in force now
func (c *Calculator) RequiredWorkDuration() time.Duration {
	if c.IsReducedSchedule() {
		return c.policy.ReducedWorkDuration
	}
	return c.policy.StandardWorkDuration
}

// TotalPauseDuration sums the closed pauses under the schedule in force now
func (c *Calculator) TotalPauseDuration(pauses []domain.Pause) time.Duration {
	return timeutil.TotalPauseDuration(c.policy, c.clock.Now(), pauses)
}

// EstimateExit returns when the day will have covered the required time.
// A fresh day (just started, no pauses yet) assumes the default pause
// allowance under the reduced schedule instead of the recorded pauses.
func (c *Calculator) EstimateExit(start time.Time, pauses []domain.Pause, fresh bool) time.Time {
	exit := start.Add(c.RequiredWorkDuration())
	if fresh {
		if c.IsReducedSchedule() {
			exit = exit.Add(c.policy.PauseAllowance)
		}
		return exit
	}
	return exit.Add(c.TotalPauseDuration(pauses))
}

// ComputeBalance compares the time worked between start and end with the required time
func (c *Calculator) ComputeBalance(start, end time.Time, pauses []domain.Pause) Balance {
	required := c.RequiredWorkDuration()
	worked := end.Sub(start) - c.TotalPauseDuration(pauses)
	return Balance{
		Worked:   worked,
		Required: required,
		Delta:    worked - required,
	}
}

// Summarize builds the summary of record. An open day is measured up to now.
// It returns ErrInsufficientData when the day has not started.
func (c *Calculator) Summarize(record domain.DayRecord, includeBalance bool) (Summary, error) {
	if !record.HasStarted() {
		return Summary{}, ErrInsufficientData
	}

	start := *record.Start
	end := c.clock.Now()
	if record.IsClosed() {
		end = *record.End
	}

	totalPause := c.TotalPauseDuration(record.Pauses)
	summary := Summary{
		Start:         start,
		End:           end,
		Closed:        record.IsClosed(),
		TotalPause:    totalPause,
		Worked:        end.Sub(start) - totalPause,
		EstimatedExit: c.EstimateExit(start, record.Pauses, false),
	}

	if includeBalance {
		balance := c.ComputeBalance(start, end, record.Pauses)
		summary.Balance = &balance
	}

	return summary, nil
}
