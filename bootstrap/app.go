package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/taskflow/component"
	"github.com/kbukum/taskflow/logger"
)

// App carries a typed configuration and the components a job depends on.
type App[C Config] struct {
	settings

	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	onStart []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg and validates it. Unless WithLogger is
// given, the global logger and the component loggers are initialized from
// the config's Logging section before anything else logs.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	svc := cfg.GetServiceConfig()

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		logger.Init(&svc.Logging)
		logger.RegisterDefaults()
		s.logger = logger.GetGlobalLogger()
	}

	return &App[C]{
		settings:   s,
		Name:       svc.Name,
		Version:    svc.Version,
		Cfg:        cfg,
		Components: component.NewRegistry(),
		Logger:     s.logger,
	}, nil
}

// RegisterComponent adds a component to the registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck lists every component that does not report healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	reports := a.Components.HealthAll(ctx)
	if component.Overall(reports) == component.StatusHealthy {
		return nil
	}
	var bad []string
	for _, h := range reports {
		if h.OK() {
			continue
		}
		entry := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			entry += "(" + h.Message + ")"
		}
		bad = append(bad, entry)
	}
	return fmt.Errorf("unhealthy components: %s", strings.Join(bad, ", "))
}
