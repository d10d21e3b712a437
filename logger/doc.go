// Package logger provides structured logging for taskflow on top of zerolog.
//
// A global logger is initialized once from Config (see Init) and named
// component loggers are handed out through Get. Every engine and blueprint
// log line carries the standard field keys defined in fields.go so that a
// batch can be followed across executors by its batch_id.
package logger
