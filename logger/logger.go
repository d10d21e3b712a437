package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

// Logger wraps zerolog.Logger with the service name it logs for.
type Logger struct {
	logger  zerolog.Logger
	service string
}

// New creates a logger writing to cfg.Output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger that writes to w regardless of cfg.Output.
// An unknown level falls back to info.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if isConsole(cfg.Format) {
		zl = zerolog.New(consoleWriter(w, serviceName, cfg.NoColor))
	} else {
		zl = zerolog.New(w)
	}

	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{logger: zc.Logger(), service: serviceName}
}

// NewDefault creates an info-level console logger on stderr.
func NewDefault(serviceName string) *Logger {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg, serviceName)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop(), service: "nop"}
}

type batchKey struct{}

// ContextWithBatchID stores a batch id for WithContext to pick up.
func ContextWithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, batchKey{}, batchID)
}

// BatchIDFromContext returns the batch id stored in ctx, if any.
func BatchIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(batchKey{}).(string)
	return id
}

func (l *Logger) derive(fn func(zerolog.Context) zerolog.Context) *Logger {
	return &Logger{logger: fn(l.logger.With()).Logger(), service: l.service}
}

// WithContext tags the logger with the batch id and the active trace and
// span ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context {
		if id := BatchIDFromContext(ctx); id != "" {
			zc = zc.Str(FieldBatchID, id)
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			zc = zc.Str(FieldTraceID, sc.TraceID().String()).
				Str(FieldSpanID, sc.SpanID().String())
		}
		return zc
	})
}

// WithComponent tags the logger with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context {
		return zc.Str(FieldComponent, name)
	})
}

// WithTask tags the logger with a task id.
func (l *Logger) WithTask(id uint64) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context {
		return zc.Uint64(FieldTaskID, id)
	})
}

// WithFields attaches fields to every subsequent line.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context {
		return zc.Fields(fields)
	})
}

// WithError attaches err to every subsequent line.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context {
		return zc.Err(err)
	})
}

// GetLogger returns the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Error(), msg, fields)
}

// emit is a no-op for disabled levels, where zerolog hands out a nil event.
func emit(ev *zerolog.Event, msg string, fields []map[string]interface{}) {
	if ev == nil {
		return
	}
	for _, f := range fields {
		ev.Fields(f)
	}
	ev.Msg(msg)
}

func isConsole(format string) bool {
	switch strings.ToLower(format) {
	case FormatConsole, FormatPretty:
		return true
	}
	return false
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}
