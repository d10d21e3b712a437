package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorCode classifies a failed call.
type ErrorCode string

const (
	// ErrCodeTimeout: the request deadline or the client timeout was hit.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled: the caller gave up.
	ErrCodeCanceled ErrorCode = "canceled"
	// ErrCodeConnection: refused, DNS, reset and other transport failures.
	ErrCodeConnection ErrorCode = "connection"
	// ErrCodeStatus: the server answered with a non-2xx status.
	ErrCodeStatus ErrorCode = "status"
	// ErrCodeValidation: the request could not be built.
	ErrCodeValidation ErrorCode = "validation"
)

// Error is returned by every failed Client call.
type Error struct {
	Code ErrorCode
	// StatusCode is set for ErrCodeStatus only.
	StatusCode int
	Message    string
	Retryable  bool
	Err        error
}

func (e *Error) Error() string {
	if e.Code == ErrCodeStatus {
		return fmt.Sprintf("httpclient: %s %d: %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(code ErrorCode, err error, retryable bool) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: retryable, Err: err}
}

// NewTimeoutError wraps err as a retryable timeout.
func NewTimeoutError(err error) *Error { return wrap(ErrCodeTimeout, err, true) }

// NewCanceledError wraps err as a caller cancellation.
func NewCanceledError(err error) *Error { return wrap(ErrCodeCanceled, err, false) }

// NewConnectionError wraps err as a retryable transport failure.
func NewConnectionError(err error) *Error { return wrap(ErrCodeConnection, err, true) }

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// NewStatusError reports a non-2xx answer. 429 and 5xx are retryable.
func NewStatusError(statusCode int) *Error {
	return &Error{
		Code:       ErrCodeStatus,
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Retryable:  statusCode == http.StatusTooManyRequests || statusCode >= 500,
	}
}

// ClassifyStatusCode returns nil for 2xx and a status error otherwise.
func ClassifyStatusCode(statusCode int) *Error {
	if statusCode >= 200 && statusCode <= 299 {
		return nil
	}
	return NewStatusError(statusCode)
}

// classifyTransportError tells a timeout from a caller cancellation from
// a plain connection failure. Deadlines win over cancellation because
// the client timeout also cancels the request context.
func classifyTransportError(ctx context.Context, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return NewTimeoutError(err)
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return NewCanceledError(err)
	default:
		return NewConnectionError(err)
	}
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func hasCode(err error, code ErrorCode) bool {
	e, ok := asError(err)
	return ok && e.Code == code
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsCanceled reports whether err is a caller cancellation.
func IsCanceled(err error) bool { return hasCode(err, ErrCodeCanceled) }

// IsConnection reports whether err is a transport failure.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsStatus reports whether err is a non-2xx answer.
func IsStatus(err error) bool { return hasCode(err, ErrCodeStatus) }

// IsRetryable reports whether the failed call may be retried.
func IsRetryable(err error) bool {
	e, ok := asError(err)
	return ok && e.Retryable
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := asError(err); ok {
		return e.StatusCode
	}
	return 0
}
