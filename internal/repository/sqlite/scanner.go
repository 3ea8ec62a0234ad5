package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanDayRecord scans a single day record from a database row
func ScanDayRecord(scanner Scanner) (*DayRecordRow, error) {
	row := &DayRecordRow{}
	var updatedAt string

	err := scanner.Scan(
		&row.UserID,
		&row.Day,
		&row.Document,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t, err := ParseTimeFromDB(updatedAt); err == nil {
		row.UpdatedAt = t
	}

	return row, nil
}
