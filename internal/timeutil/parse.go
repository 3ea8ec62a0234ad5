package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var clockTimeRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClockTime parses a 24-hour HH:MM time of day
func ParseClockTime(s string) (hour, minute int, err error) {
	matches := clockTimeRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}

	hour, _ = strconv.Atoi(matches[1])
	minute, _ = strconv.Atoi(matches[2])
	if hour > 23 {
		return 0, 0, fmt.Errorf("hour out of range in %q", s)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("minute out of range in %q", s)
	}
	return hour, minute, nil
}

// legacyLayout is the naive ISO layout written by the first version of the bot
const legacyLayout = "2006-01-02T15:04:05.999999999"

// FormatTimestamp encodes t as ISO-8601 with its zone offset
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp decodes an ISO-8601 timestamp. Values without an offset
// are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		if loc != nil {
			t = t.In(loc)
		}
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(legacyLayout, s, loc)
}
