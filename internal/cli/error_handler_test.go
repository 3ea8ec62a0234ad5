package cli

import (
	"errors"
	"testing"

	"fichaje/internal/config"
	apperrors "fichaje/internal/errors"
	"fichaje/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddInvalidFormatError("time", "25:00", validation.InvalidTimeMessage)

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "edit",
			err:       ve,
			expected:  "failed to edit: ❗ Hora inválida, usa el formato HH:MM.",
		},
		{
			name:      "Invalid input error",
			operation: "start",
			err:       apperrors.NewInvalidInputError("user_id", "", "cannot be empty"),
			expected:  "failed to start: invalid input for user_id: cannot be empty",
		},
		{
			name:      "Storage error",
			operation: "pause",
			err:       apperrors.NewStorageError("put", errors.New("disk full")),
			expected:  "failed to pause: ⚠️ No se ha podido acceder a los datos. Inténtalo de nuevo.",
		},
		{
			name:      "Config error",
			operation: "serve",
			err:       &config.ConfigError{Field: "bot.token", Message: "bot token is required"},
			expected:  "failed to serve: invalid configuration: bot.token: bot token is required",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	if err := NewErrorHandler().Handle("noop", nil); err != nil {
		t.Errorf("Handle(nil) = %v, want nil", err)
	}
}

func TestErrorHandler_HandleIsIdempotent(t *testing.T) {
	eh := NewErrorHandler()
	first := eh.Handle("start", apperrors.NewStorageError("get", errors.New("boom")))
	second := eh.Handle("open store", first)

	if second.Error() != first.Error() {
		t.Errorf("second Handle() = %q, want %q", second.Error(), first.Error())
	}
	if !eh.IsStorageError(second) {
		t.Error("handled error should still be a storage error")
	}
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()
	ve := validation.NewValidationError()
	ve.AddArgumentCountError("args", nil, "/editar_entrada HH:MM")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", eh.Handle("edit", ve), 2},
		{"invalid input", eh.Handle("start", apperrors.NewInvalidInputError("user", "", "empty")), 2},
		{"storage", eh.Handle("start", apperrors.NewStorageError("put", errors.New("x"))), 1},
		{"plain", errors.New("x"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eh.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	eh := NewErrorHandler()

	if code := eh.GetErrorCode(apperrors.NewTimeoutError("get", nil)); code != "TIMEOUT" {
		t.Errorf("GetErrorCode() = %q, want TIMEOUT", code)
	}
	if code := eh.GetErrorCode(errors.New("x")); code != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %q, want UNKNOWN_ERROR", code)
	}
}
