package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 7, 1, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestNewDayRecord(t *testing.T) {
	record := NewDayRecord()

	assert.Nil(t, record.Start)
	assert.Nil(t, record.End)
	assert.NotNil(t, record.Pauses)
	assert.Empty(t, record.Pauses)
	assert.False(t, record.HasStarted())
	assert.False(t, record.IsClosed())
	assert.False(t, record.IsPaused())
}

func TestDayRecord_StartDay(t *testing.T) {
	record := NewDayRecord()
	record.Pauses = []Pause{{Start: at(7, 0)}}

	record.StartDay(at(9, 0))

	require.True(t, record.HasStarted())
	assert.Equal(t, at(9, 0), *record.Start)
	assert.Empty(t, record.Pauses)
}

func TestDayRecord_PauseCycle(t *testing.T) {
	record := NewDayRecord()
	record.StartDay(at(9, 0))

	assert.False(t, record.EndPause(at(10, 0)), "resume without pause must be rejected")
	assert.Empty(t, record.Pauses)

	assert.True(t, record.BeginPause(at(12, 0)))
	assert.True(t, record.IsPaused())
	assert.False(t, record.BeginPause(at(12, 5)), "second pause must be rejected")
	assert.Len(t, record.Pauses, 1)

	assert.True(t, record.EndPause(at(12, 40)))
	assert.False(t, record.IsPaused())
	assert.Equal(t, at(12, 40), *record.Pauses[0].End)

	assert.True(t, record.BeginPause(at(16, 0)))
	assert.Equal(t, 1, record.OpenPauseIndex())
	assert.Len(t, record.Pauses, 2)
}

func TestDayRecord_OpenPauseIndex(t *testing.T) {
	tests := []struct {
		name     string
		pauses   []Pause
		expected int
	}{
		{name: "no pauses", pauses: nil, expected: -1},
		{name: "all closed", pauses: []Pause{{Start: at(10, 0), End: ptr(at(10, 10))}}, expected: -1},
		{name: "last open", pauses: []Pause{{Start: at(10, 0), End: ptr(at(10, 10))}, {Start: at(12, 0)}}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := DayRecord{Pauses: tt.pauses}
			assert.Equal(t, tt.expected, record.OpenPauseIndex())
		})
	}
}

func TestDayRecord_EndDay(t *testing.T) {
	record := NewDayRecord()
	record.EndDay(at(17, 30))

	assert.True(t, record.IsClosed())
	assert.Equal(t, at(17, 30), *record.End)
}

func TestDayRecord_HasPause(t *testing.T) {
	record := DayRecord{Pauses: []Pause{{Start: at(10, 0)}, {Start: at(11, 0)}}}

	assert.False(t, record.HasPause(-1))
	assert.True(t, record.HasPause(0))
	assert.True(t, record.HasPause(1))
	assert.False(t, record.HasPause(2))
}

func TestDayRecord_CloneAndEqual(t *testing.T) {
	record := DayRecord{
		Start:  ptr(at(9, 0)),
		Pauses: []Pause{{Start: at(12, 0), End: ptr(at(12, 30))}},
	}

	clone := record.Clone()
	assert.True(t, record.Equal(clone))

	*clone.Pauses[0].End = at(12, 45)
	assert.False(t, record.Equal(clone), "clone must not share pause ends")
	assert.Equal(t, at(12, 30), *record.Pauses[0].End)

	other := record.Clone()
	other.EndDay(at(17, 0))
	assert.False(t, record.Equal(other))

	sameInstant := record.Clone()
	sameInstant.Start = ptr(at(9, 0).In(time.FixedZone("X", 3600)))
	assert.True(t, record.Equal(sameInstant))
}

func TestPause_Bounds(t *testing.T) {
	p := Pause{Start: at(12, 0)}
	start, end := p.Bounds()

	assert.Equal(t, at(12, 0), start)
	assert.Nil(t, end)
	assert.True(t, p.IsOpen())
}
