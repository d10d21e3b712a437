package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/taskflow/logger"
)

// DefaultStopTimeout bounds how long a single component may take to stop.
const DefaultStopTimeout = 10 * time.Second

// Registry starts components in registration order and stops the started
// ones in reverse. Components start strictly in order, so the running ones
// are always the first running entries.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	running    int
	log        *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{log: logger.Get(logger.ComponentRegistry)}
}

func (r *Registry) index(name string) int {
	return slices.IndexFunc(r.components, func(c Component) bool { return c.Name() == name })
}

// Register appends c. Names must be unique; register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(c.Name()) >= 0 {
		return fmt.Errorf("component %s already registered", c.Name())
	}
	r.components = append(r.components, c)
	r.log.Debug("Component registered", logger.F{logger.FieldComponent: c.Name()})
	return nil
}

// StartAll starts every component not yet running. It stops at the first
// failure and leaves the earlier components running for StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ; r.running < len(r.components); r.running++ {
		c := r.components[r.running]
		if err := c.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.F{logger.FieldComponent: c.Name()}.Err(err))
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}
		r.log.Info("Component started", describe(c))
	}
	return nil
}

// StopAll stops running components in reverse order, giving each
// DefaultStopTimeout. Every stop error is returned.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for ; r.running > 0; r.running-- {
		c := r.components[r.running-1]
		if err := stopWithin(ctx, c, DefaultStopTimeout); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", c.Name(), err))
			r.log.Error("Component stop failed", logger.F{logger.FieldComponent: c.Name()}.Err(err))
			continue
		}
		r.log.Debug("Component stopped", logger.F{logger.FieldComponent: c.Name()})
	}
	return errors.Join(errs...)
}

func stopWithin(ctx context.Context, c Component, d time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return c.Stop(ctx)
}

func describe(c Component) logger.F {
	f := logger.F{logger.FieldComponent: c.Name()}
	d, ok := c.(Describable)
	if !ok {
		return f
	}
	desc := d.Describe()
	if desc.Name != "" {
		f[logger.FieldComponent] = desc.Name
	}
	f["type"] = desc.Type
	if desc.Details != "" {
		f["details"] = desc.Details
	}
	return f
}

// HealthAll reports every component's health in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]Health, len(r.components))
	for i, c := range r.components {
		reports[i] = c.Health(ctx)
	}
	return reports
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(name); i >= 0 {
		return r.components[i]
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.components)
}
