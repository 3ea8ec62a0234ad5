package sqlite

import "time"

// DayRecordRow is one row of the day_records table
type DayRecordRow struct {
	UserID    string
	Day       string
	Document  string // JSON encoded repository.DayDocument
	UpdatedAt time.Time
}
