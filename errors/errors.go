package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the systemic error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// ExitCode returns the process exit code for this error.
func (e *AppError) ExitCode() int { return ExitCodeFor(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func newf(code ErrorCode, details map[string]any, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Details: details}
}

// InvalidInput reports a batch that cannot be read at all.
func InvalidInput(reason string) *AppError {
	return newf(ErrCodeInvalidInput, nil, "Invalid input: %s", reason)
}

// InvalidRow reports a malformed field on a 1-based input line.
func InvalidRow(row int, field, reason string) *AppError {
	return newf(ErrCodeInvalidFormat, map[string]any{"row": row, "field": field},
		"Invalid row %d: %s %s", row, field, reason)
}

// MissingField reports a required column absent from the header.
func MissingField(field string) *AppError {
	return newf(ErrCodeMissingField, map[string]any{"field": field}, "Missing required field: %s", field)
}

// Validation reports configuration that failed validation.
func Validation(message string) *AppError {
	return New(ErrCodeConfigInvalid, message)
}

// IncompleteBatch reports a batch that lost results on the way to the
// collector.
func IncompleteBatch(expected, received int) *AppError {
	return newf(ErrCodeIncompleteBatch, map[string]any{"expected": expected, "received": received},
		"Received %d of %d results.", received, expected)
}

// ResultMismatch reports a raw result that cannot be matched to its row.
func ResultMismatch(seq int, reason string) *AppError {
	return newf(ErrCodeResultMismatch, map[string]any{"row": seq}, "Result for row %d rejected: %s", seq, reason)
}

// Canceled reports a batch interrupted before every row finished.
func Canceled(cause error) *AppError {
	return New(ErrCodeCanceled, "Batch interrupted before completion.").WithCause(cause)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// IsAppError reports whether err's chain holds an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// ExitCode returns the exit code for any error. Nil maps to ExitOK and
// non-AppErrors to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.ExitCode()
	}
	return ExitFailure
}
