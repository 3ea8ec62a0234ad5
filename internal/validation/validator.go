package validation

import (
	"strconv"
	"strings"

	"fichaje/internal/timeutil"
)

const (
	// InvalidIndexMessage is shown for a pause number that is not an integer or is out of range
	InvalidIndexMessage = "Índice inválido."
	// InvalidTimeMessage is shown for a time that is not a 24-hour HH:MM
	InvalidTimeMessage = "Hora inválida, usa el formato HH:MM."
)

// ClockEdit is a validated manual edit. PauseIndex is 0-based and -1 when
// the edit targets the day start or end.
type ClockEdit struct {
	PauseIndex int
	Hour       int
	Minute     int
}

// Validator checks the positional arguments of the manual edit commands
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsValidClockTime checks if s is a 24-hour HH:MM time of day
func (v *Validator) IsValidClockTime(s string) bool {
	_, _, err := timeutil.ParseClockTime(strings.TrimSpace(s))
	return err == nil
}

// IsValidPauseNumber checks if s is a 1-based pause number
func (v *Validator) IsValidPauseNumber(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 1
}

// ValidateDayEdit validates "<HH:MM>" for the start and end edits.
// usage is the correct invocation shown when the argument count is wrong.
func (v *Validator) ValidateDayEdit(usage string, args []string) (ClockEdit, error) {
	ve := NewValidationError()
	if len(args) != 1 {
		ve.AddArgumentCountError("args", args, usage)
		return ClockEdit{}, ve
	}

	edit := ClockEdit{PauseIndex: -1}
	v.parseTime(ve, args[0], &edit)
	if ve.HasErrors() {
		return ClockEdit{}, ve
	}
	return edit, nil
}

// ValidatePauseEdit validates "<N> <HH:MM>" for the pause edits. The pause
// number is checked for shape only; ValidatePauseIndex checks it against the record.
func (v *Validator) ValidatePauseEdit(usage string, args []string) (ClockEdit, error) {
	ve := NewValidationError()
	if len(args) != 2 {
		ve.AddArgumentCountError("args", args, usage)
		return ClockEdit{}, ve
	}

	var edit ClockEdit
	if v.IsValidPauseNumber(args[0]) {
		n, _ := strconv.Atoi(strings.TrimSpace(args[0]))
		edit.PauseIndex = n - 1
	} else {
		ve.AddInvalidValueError("index", args[0], InvalidIndexMessage)
	}
	v.parseTime(ve, args[1], &edit)

	if ve.HasErrors() {
		return ClockEdit{}, ve
	}
	return edit, nil
}

// ValidatePauseIndex checks a 0-based index against the number of recorded pauses
func (v *Validator) ValidatePauseIndex(index, count int) error {
	if index >= 0 && index < count {
		return nil
	}
	ve := NewValidationError()
	ve.AddInvalidRangeError("index", index+1, InvalidIndexMessage)
	return ve
}

func (v *Validator) parseTime(ve *ValidationError, raw string, edit *ClockEdit) {
	hour, minute, err := timeutil.ParseClockTime(strings.TrimSpace(raw))
	if err != nil {
		ve.AddInvalidFormatError("time", raw, InvalidTimeMessage)
		return
	}
	edit.Hour = hour
	edit.Minute = minute
}
