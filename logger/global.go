package logger

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

var global atomic.Pointer[Logger]

// Init builds the global logger from cfg and points zerolog's own global
// logger at the same output.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	name := cfg.ServiceName
	if name == "" {
		name = "default"
	}
	l := New(cfg, name)
	SetGlobalLogger(l)
	log.Logger = l.logger
}

// SetGlobalLogger replaces the global logger. nil resets it to a default
// on next use.
func SetGlobalLogger(l *Logger) {
	global.Store(l)
}

// GetGlobalLogger returns the global logger, creating a default one if none
// was set.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewDefault("default"))
	return global.Load()
}

func Debug(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(msg, fields...)
}

// WithContext is GetGlobalLogger().WithContext(ctx).
func WithContext(ctx context.Context) *Logger {
	return GetGlobalLogger().WithContext(ctx)
}

// WithComponent is GetGlobalLogger().WithComponent(name).
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}
