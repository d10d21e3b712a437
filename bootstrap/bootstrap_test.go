package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/kbukum/taskflow/component"
	"github.com/kbukum/taskflow/config"
	"github.com/kbukum/taskflow/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	m.record("start:" + m.name)
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	m.record("stop:" + m.name)
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return m.health
}
func (m *mockComponent) record(e string) {
	if m.events != nil {
		*m.events = append(*m.events, e)
	}
}

func healthy(name string) *mockComponent {
	return &mockComponent{name: name, health: component.Health{Name: name, Status: component.StatusHealthy}}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "taskflow", Version: "1.0.0"}}
	app, err := NewApp(cfg, append([]Option{WithLogger(logger.Nop())}, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "taskflow" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("defaults not applied, environment = %q", app.Cfg.Environment)
	}
	if app.Components == nil || app.Logger == nil {
		t.Fatal("expected registry and logger")
	}
	if app.gracefulTimeout != DefaultGracefulTimeout {
		t.Errorf("expected default timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewAppInitializesGlobalLogger(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "taskflow"}}
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if app.Logger != logger.GetGlobalLogger() {
		t.Error("expected the global logger when no logger option is given")
	}
}

func TestNewAppValidation(t *testing.T) {
	_, err := NewApp(&testConfig{})
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Errorf("expected validation error for missing name, got %v", err)
	}
}

func TestNewAppWithOptions(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(30*time.Second), WithSignals(syscall.SIGHUP))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
	if len(app.signals) != 1 || app.signals[0] != syscall.SIGHUP {
		t.Errorf("unexpected signals %v", app.signals)
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(healthy("http")); err != nil {
		t.Fatal(err)
	}
	if err := app.RegisterComponent(healthy("http")); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded", component.StatusDegraded, true},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			_ = app.RegisterComponent(&mockComponent{
				name:   "telemetry",
				health: component.Health{Name: "telemetry", Status: tt.status, Message: "disabled"},
			})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app := newTestApp(t)
	var events []string
	a, b := healthy("a"), healthy("b")
	a.events, b.events = &events, &events
	_ = app.RegisterComponent(a)
	_ = app.RegisterComponent(b)

	app.OnStart(func(context.Context) error {
		events = append(events, "onStart")
		return nil
	})
	app.OnStop(func(context.Context) error {
		events = append(events, "onStop")
		return nil
	})

	err := app.RunTask(context.Background(), func(context.Context) error {
		events = append(events, "task")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"start:a", "start:b", "onStart", "task", "onStop", "stop:b", "stop:a"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestRunTaskError(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("http")
	comp.stopErr = errors.New("stop failed")
	_ = app.RegisterComponent(comp)

	err := app.RunTask(context.Background(), func(context.Context) error {
		return fmt.Errorf("task error")
	})
	if err == nil || err.Error() != "task error" {
		t.Errorf("task error should win over stop error, got %v", err)
	}
	if !comp.stopped {
		t.Error("component should be stopped after a failed task")
	}
}

func TestRunTaskStopErrorSurfaces(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("http")
	comp.stopErr = errors.New("stop failed")
	_ = app.RegisterComponent(comp)

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "stop failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTaskComponentStartError(t *testing.T) {
	app := newTestApp(t)
	first := healthy("first")
	broken := healthy("broken")
	broken.startErr = errors.New("refused")
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(broken)

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Errorf("expected start error, got %v", err)
	}
	if ran {
		t.Error("task must not run when a component fails to start")
	}
	if !first.stopped {
		t.Error("components started before the failure should be stopped")
	}
}

func TestRunTaskStartHookError(t *testing.T) {
	app := newTestApp(t)
	app.OnStart(func(context.Context) error { return errors.New("wiring failed") })

	err := app.RunTask(context.Background(), func(context.Context) error {
		t.Error("task must not run")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected hook error, got %v", err)
	}
}

func TestRunTaskStopHookError(t *testing.T) {
	app := newTestApp(t)
	app.OnStop(func(context.Context) error { return errors.New("flush failed") })

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected stop hook error, got %v", err)
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("http")
	_ = app.RegisterComponent(comp)
	ctx, cancel := context.WithCancel(context.Background())

	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel()
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if !comp.stopped {
		t.Error("components must stop even after cancellation")
	}
}

func TestRunTaskSignalCancelsTask(t *testing.T) {
	app := newTestApp(t, WithSignals(syscall.SIGUSR1))

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("signal did not cancel the task")
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled after signal, got %v", err)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(healthy("http"))
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := app.Shutdown(); err != nil {
		t.Errorf("second shutdown should be a no-op, got %v", err)
	}
}
