package domain

import (
	"time"
)

// Pause is a suspension of work within a day. End is nil while the pause is open.
type Pause struct {
	Start time.Time
	End   *time.Time
}

// Bounds returns the pause start and optional end
func (p Pause) Bounds() (time.Time, *time.Time) {
	return p.Start, p.End
}

// IsOpen returns true while the pause has no end
func (p Pause) IsOpen() bool {
	return p.End == nil
}

// DayRecord is one user's attendance for one calendar day.
// Pauses keep insertion order, which is also chronological order.
type DayRecord struct {
	Start  *time.Time
	End    *time.Time
	Pauses []Pause
}

// NewDayRecord returns the empty record used when nothing is stored for a key
func NewDayRecord() DayRecord {
	return DayRecord{Pauses: []Pause{}}
}

// HasStarted returns true once the day has a clock-in time
func (r DayRecord) HasStarted() bool {
	return r.Start != nil
}

// IsClosed returns true once the day has a clock-out time
func (r DayRecord) IsClosed() bool {
	return r.End != nil
}

// OpenPauseIndex returns the index of the open pause, or -1
func (r DayRecord) OpenPauseIndex() int {
	for i := len(r.Pauses) - 1; i >= 0; i-- {
		if r.Pauses[i].IsOpen() {
			return i
		}
	}
	return -1
}

// IsPaused returns true while a pause is open
func (r DayRecord) IsPaused() bool {
	return r.OpenPauseIndex() >= 0
}

// StartDay clocks in at now and clears any pauses
func (r *DayRecord) StartDay(now time.Time) {
	r.Start = &now
	r.Pauses = []Pause{}
}

// BeginPause appends an open pause. It returns false without changes when
// a pause is already open.
func (r *DayRecord) BeginPause(now time.Time) bool {
	if r.IsPaused() {
		return false
	}
	r.Pauses = append(r.Pauses, Pause{Start: now})
	return true
}

// EndPause closes the open pause. It returns false without changes when
// there is nothing to resume.
func (r *DayRecord) EndPause(now time.Time) bool {
	idx := r.OpenPauseIndex()
	if idx < 0 {
		return false
	}
	r.Pauses[idx].End = &now
	return true
}

// EndDay clocks out at now
func (r *DayRecord) EndDay(now time.Time) {
	r.End = &now
}

// HasPause reports whether idx (0-based) addresses an existing pause
func (r DayRecord) HasPause(idx int) bool {
	return idx >= 0 && idx < len(r.Pauses)
}

// Clone returns a deep copy
func (r DayRecord) Clone() DayRecord {
	c := DayRecord{
		Start:  copyTime(r.Start),
		End:    copyTime(r.End),
		Pauses: make([]Pause, len(r.Pauses)),
	}
	for i, p := range r.Pauses {
		c.Pauses[i] = Pause{Start: p.Start, End: copyTime(p.End)}
	}
	return c
}

// Equal compares two records instant by instant
func (r DayRecord) Equal(other DayRecord) bool {
	if !equalTime(r.Start, other.Start) || !equalTime(r.End, other.End) {
		return false
	}
	if len(r.Pauses) != len(other.Pauses) {
		return false
	}
	for i := range r.Pauses {
		if !r.Pauses[i].Start.Equal(other.Pauses[i].Start) || !equalTime(r.Pauses[i].End, other.Pauses[i].End) {
			return false
		}
	}
	return true
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
