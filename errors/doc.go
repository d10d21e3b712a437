// Package errors provides the systemic error type of taskflow.
//
// Task-level failures never surface as Go errors: they are recorded in the
// task's Result. Anything that makes a whole batch unusable (unreadable input,
// malformed rows, lost results, invalid configuration) is reported as an
// AppError carrying a machine-readable code and a process exit code.
package errors
