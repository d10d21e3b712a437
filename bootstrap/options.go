package bootstrap

import (
	"os"
	"syscall"
	"time"

	"github.com/kbukum/taskflow/logger"
)

// DefaultGracefulTimeout bounds shutdown when no option overrides it.
const DefaultGracefulTimeout = 15 * time.Second

// settings are the knobs Options can turn.
type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	signals         []os.Signal
}

func defaultSettings() settings {
	return settings{
		gracefulTimeout: DefaultGracefulTimeout,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Option configures the App during creation.
type Option func(*settings)

// WithLogger sets the application logger. Without it the global logger is
// initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds how long shutdown may take.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.gracefulTimeout = d }
}

// WithSignals replaces the signals that cancel a running task.
func WithSignals(sigs ...os.Signal) Option {
	return func(s *settings) { s.signals = sigs }
}
