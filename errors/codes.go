package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the batch input could not be read or parsed.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required column or field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Configuration errors
const (
	// ErrCodeConfigInvalid indicates configuration failed validation.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// Execution errors
const (
	// ErrCodeIncompleteBatch indicates the collector received fewer results
	// than rows submitted.
	ErrCodeIncompleteBatch ErrorCode = "INCOMPLETE_BATCH"
	// ErrCodeResultMismatch indicates a raw result could not be matched to
	// its originating input row.
	ErrCodeResultMismatch ErrorCode = "RESULT_MISMATCH"
	// ErrCodeCanceled indicates the batch was interrupted before completion.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadInput = 2
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:  ExitBadInput,
	ErrCodeMissingField:  ExitBadInput,
	ErrCodeInvalidFormat: ExitBadInput,
	ErrCodeConfigInvalid: ExitBadInput,
}

// ExitCodeFor returns the process exit code for an error code.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return ExitFailure
}
