package cli

import (
	"errors"
	"fmt"

	"fichaje/internal/config"
	apperrors "fichaje/internal/errors"
	"fichaje/internal/validation"
)

// commandError carries the message shown to the user and keeps the cause
// reachable for errors.As and ExitCode
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }

func (e *commandError) Unwrap() error { return e.err }

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	var ce *commandError
	if errors.As(err, &ce) {
		return err
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return &commandError{fmt.Sprintf("failed to %s: invalid configuration: %s", operation, cfgErr.Error()), err}
	}

	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return &commandError{fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()), err}
	}

	if appErr, ok := apperrors.AsAppError(err); ok {
		// Input errors name the flag or argument, which the chat texts do not
		if appErr.IsType(apperrors.ErrorTypeInvalidInput) {
			return &commandError{fmt.Sprintf("failed to %s: %s", operation, appErr.Message), err}
		}
		return &commandError{fmt.Sprintf("failed to %s: %s", operation, apperrors.GetUserMessage(err)), err}
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	return apperrors.IsErrorType(err, apperrors.ErrorTypeValidation) ||
		apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput)
}

// IsStorageError checks if an error came from the document store
func (eh *ErrorHandler) IsStorageError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeStorage)
}

// ExitCode maps an error to the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err):
		return 2
	default:
		return 1
	}
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return apperrors.GetErrorCode(err)
}
