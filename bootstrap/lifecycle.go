package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"github.com/kbukum/taskflow/logger"
)

// RunTask starts the components, runs the OnStart hooks, then runs task
// with a context canceled by the configured signals. Components are always
// stopped afterwards; the task's error takes precedence over a shutdown
// error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, stopSignals := signal.NotifyContext(ctx, a.signals...)
	defer stopSignals()

	if err := a.startup(taskCtx); err != nil {
		if stopErr := a.stop(); stopErr != nil {
			a.Logger.Warn("Shutdown after failed startup reported errors", logger.F{}.Err(stopErr))
		}
		return err
	}

	start := time.Now()
	taskErr := task(taskCtx)
	fields := logger.F{}.Took(time.Since(start))
	switch {
	case taskErr != nil:
		a.Logger.Error("Task failed", fields.Err(taskErr))
	case taskCtx.Err() != nil && ctx.Err() == nil:
		a.Logger.Warn("Task interrupted by signal", fields)
	default:
		a.Logger.Info("Task finished", fields)
	}

	stopErr := a.stop()
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

// Shutdown stops the application when the caller manages its own task loop.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.F{}.Err(err))
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	return nil
}

// stop gets a fresh context bounded by the graceful timeout, so a canceled
// task still shuts down. OnStop hooks run before components stop; every
// failure is reported.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	hookErr := runHooks(ctx, a.onStop)
	if hookErr != nil {
		a.Logger.Error("OnStop hook error", logger.F{}.Err(hookErr))
	}
	stopErr := a.Components.StopAll(ctx)
	if stopErr != nil {
		a.Logger.Error("Shutdown completed with errors", logger.F{}.Err(stopErr))
	}
	a.Logger.Debug("Application shutdown complete")
	return errors.Join(hookErr, stopErr)
}
