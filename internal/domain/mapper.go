package domain

import (
	"fmt"
	"time"

	"fichaje/internal/errors"
	"fichaje/internal/repository"
	"fichaje/internal/timeutil"
)

// DayRecordMapper converts between domain records and stored documents
type DayRecordMapper struct {
	location *time.Location
}

// NewDayRecordMapper creates a mapper that reads offset-less timestamps in loc
func NewDayRecordMapper(loc *time.Location) *DayRecordMapper {
	if loc == nil {
		loc = time.Local
	}
	return &DayRecordMapper{location: loc}
}

// ToDocument converts a domain record to its stored document
func (m *DayRecordMapper) ToDocument(record DayRecord) *repository.DayDocument {
	doc := &repository.DayDocument{
		Start:  formatOptional(record.Start),
		End:    formatOptional(record.End),
		Pauses: make([]repository.PauseDocument, len(record.Pauses)),
	}
	for i, p := range record.Pauses {
		doc.Pauses[i] = repository.PauseDocument{
			Start: timeutil.FormatTimestamp(p.Start),
			End:   formatOptional(p.End),
		}
	}
	return doc
}

// FromDocument converts a stored document to a domain record. Unreadable
// timestamps yield a CorruptRecord AppError.
func (m *DayRecordMapper) FromDocument(doc *repository.DayDocument) (DayRecord, error) {
	record := NewDayRecord()
	if doc == nil {
		return record, nil
	}

	var err error
	if record.Start, err = m.parseOptional("start", doc.Start); err != nil {
		return NewDayRecord(), err
	}
	if record.End, err = m.parseOptional("end", doc.End); err != nil {
		return NewDayRecord(), err
	}

	for i, p := range doc.Pauses {
		field := fmt.Sprintf("pauses[%d].start", i)
		if p.Start == "" {
			return NewDayRecord(), errors.NewCorruptRecordError(field, p.Start, nil)
		}
		start, err := timeutil.ParseTimestamp(p.Start, m.location)
		if err != nil {
			return NewDayRecord(), errors.NewCorruptRecordError(field, p.Start, err)
		}
		end, err := m.parseOptional(fmt.Sprintf("pauses[%d].end", i), p.End)
		if err != nil {
			return NewDayRecord(), err
		}
		record.Pauses = append(record.Pauses, Pause{Start: start, End: end})
	}

	return record, nil
}

func (m *DayRecordMapper) parseOptional(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timeutil.ParseTimestamp(value, m.location)
	if err != nil {
		return nil, errors.NewCorruptRecordError(field, value, err)
	}
	return &t, nil
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeutil.FormatTimestamp(*t)
}
