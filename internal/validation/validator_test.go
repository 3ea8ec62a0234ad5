package validation

import (
	"testing"
)

func TestValidator_IsValidClockTime(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Midnight", "00:00", true},
		{"Single digit hour", "7:05", true},
		{"Last minute", "23:59", true},
		{"Surrounding spaces", " 09:30 ", true},
		{"Hour out of range", "24:00", false},
		{"Minute out of range", "12:60", false},
		{"Single digit minute", "12:5", false},
		{"Missing colon", "1230", false},
		{"Seconds", "12:30:00", false},
		{"Empty", "", false},
		{"Letters", "ab:cd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsValidClockTime(tt.input)
			if result != tt.expected {
				t.Errorf("IsValidClockTime(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidPauseNumber(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"12", true},
		{"0", false},
		{"-1", false},
		{"1.5", false},
		{"uno", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := validator.IsValidPauseNumber(tt.input)
			if result != tt.expected {
				t.Errorf("IsValidPauseNumber(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_ValidateDayEdit(t *testing.T) {
	validator := NewValidator()
	usage := "/editar_entrada HH:MM"

	tests := []struct {
		name        string
		args        []string
		expectError bool
		message     string
		hour        int
		minute      int
	}{
		{"Valid time", []string{"08:45"}, false, "", 8, 45},
		{"No arguments", []string{}, true, "❗ Usa /editar_entrada HH:MM", 0, 0},
		{"Too many arguments", []string{"08:45", "09:00"}, true, "❗ Usa /editar_entrada HH:MM", 0, 0},
		{"Bad time", []string{"8h"}, true, "❗ Hora inválida, usa el formato HH:MM.", 0, 0},
		{"Hour out of range", []string{"25:00"}, true, "❗ Hora inválida, usa el formato HH:MM.", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit, err := validator.ValidateDayEdit(usage, tt.args)

			if tt.expectError {
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("ValidateDayEdit(%v) error = %v, expected *ValidationError", tt.args, err)
				}
				if got := ve.GetUserFriendlyMessage(); got != tt.message {
					t.Errorf("ValidateDayEdit(%v) message = %q, expected %q", tt.args, got, tt.message)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateDayEdit(%v) unexpected error: %v", tt.args, err)
			}
			if edit.PauseIndex != -1 || edit.Hour != tt.hour || edit.Minute != tt.minute {
				t.Errorf("ValidateDayEdit(%v) = %+v", tt.args, edit)
			}
		})
	}
}

func TestValidator_ValidatePauseEdit(t *testing.T) {
	validator := NewValidator()
	usage := "/editar_pausa_inicio N HH:MM"

	tests := []struct {
		name        string
		args        []string
		expectError bool
		message     string
		index       int
	}{
		{"First pause", []string{"1", "12:00"}, false, "", 0},
		{"Third pause", []string{"3", "16:10"}, false, "", 2},
		{"Missing time", []string{"1"}, true, "❗ Usa /editar_pausa_inicio N HH:MM", 0},
		{"Too many arguments", []string{"1", "12:00", "x"}, true, "❗ Usa /editar_pausa_inicio N HH:MM", 0},
		{"Non integer index", []string{"a", "12:00"}, true, "❗ Índice inválido.", 0},
		{"Zero index", []string{"0", "12:00"}, true, "❗ Índice inválido.", 0},
		{"Bad time", []string{"1", "12-00"}, true, "❗ Hora inválida, usa el formato HH:MM.", 0},
		{"Both invalid", []string{"x", "99:99"}, true, "❗ Índice inválido.\n❗ Hora inválida, usa el formato HH:MM.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit, err := validator.ValidatePauseEdit(usage, tt.args)

			if tt.expectError {
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("ValidatePauseEdit(%v) error = %v, expected *ValidationError", tt.args, err)
				}
				if got := ve.GetUserFriendlyMessage(); got != tt.message {
					t.Errorf("ValidatePauseEdit(%v) message = %q, expected %q", tt.args, got, tt.message)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidatePauseEdit(%v) unexpected error: %v", tt.args, err)
			}
			if edit.PauseIndex != tt.index {
				t.Errorf("ValidatePauseEdit(%v) index = %d, expected %d", tt.args, edit.PauseIndex, tt.index)
			}
		})
	}
}

func TestValidator_ValidatePauseIndex(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		index       int
		count       int
		expectError bool
	}{
		{"First of two", 0, 2, false},
		{"Last of two", 1, 2, false},
		{"Beyond the end", 2, 2, true},
		{"No pauses", 0, 0, true},
		{"Negative", -1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePauseIndex(tt.index, tt.count)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidatePauseIndex(%d, %d) error = %v, expectError %v", tt.index, tt.count, err, tt.expectError)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("ValidatePauseIndex(%d, %d) returned %T, expected *ValidationError", tt.index, tt.count, err)
			}
		})
	}
}
