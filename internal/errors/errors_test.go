package errors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("bad time")
	err := NewValidationError("hora inválida", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("day record", "42/2025-07-01")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "day record not found: 42/2025-07-01" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "42/2025-07-01" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("put day record", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Message != "store operation failed: put day record" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewStorageError should unwrap to its cause")
	}
}

func TestNewCorruptRecordError(t *testing.T) {
	err := NewCorruptRecordError("start", "yesterday", errors.New("parse"))

	if err.Type != ErrorTypeCorruptRecord {
		t.Errorf("NewCorruptRecordError type = %v", err.Type)
	}
	value, ok := err.GetContext("value")
	if !ok || value != "yesterday" {
		t.Errorf("NewCorruptRecordError should set value context")
	}
}

func TestFromContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := FromContext(ctx, "load day", ctx.Err())
	if !IsErrorType(err, ErrorTypeTimeout) {
		t.Fatalf("FromContext() = %v, want timeout error", err)
	}

	plain := errors.New("boom")
	if got := FromContext(context.Background(), "load day", plain); got != plain {
		t.Errorf("FromContext() should pass through non-deadline errors, got %v", got)
	}
	if FromContext(context.Background(), "load day", nil) != nil {
		t.Errorf("FromContext(nil) should be nil")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := WrapError(errors.New("x"), ErrorTypeTransport, "send")
	outer := errors.Join(errors.New("outer"), wrapped)

	appErr, ok := AsAppError(outer)
	if !ok {
		t.Fatalf("AsAppError() should find wrapped AppError")
	}
	if appErr.Type != ErrorTypeTransport {
		t.Errorf("AsAppError() type = %v", appErr.Type)
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Errorf("AsAppError() should not match plain errors")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("Índice inválido.", nil), "❗ Índice inválido."},
		{"corrupt record", NewCorruptRecordError("end", "?", nil), "⚠️ No hay suficientes datos."},
		{"storage", NewStorageError("get", nil), "⚠️ No se ha podido acceder a los datos. Inténtalo de nuevo."},
		{"timeout", NewTimeoutError("get", time.Second), "⚠️ La operación ha tardado demasiado. Inténtalo de nuevo."},
		{"plain", errors.New("boom"), "⚠️ Ha ocurrido un error inesperado."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.want {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(NewStorageError("x", nil)); got != "STORAGE_ERROR" {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := GetErrorCode(errors.New("x")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v", got)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{NewValidationError("x", nil), false},
		{NewInvalidInputError("index", "a", "not a number"), false},
		{NewNotFoundError("day record", "k"), false},
		{NewStorageError("put", nil), true},
		{NewTransportError("send", nil), true},
		{NewCorruptRecordError("start", "", nil), true},
		{errors.New("unknown"), true},
	}
	for _, tt := range tests {
		if got := ShouldLogError(tt.err); got != tt.want {
			t.Errorf("ShouldLogError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
