package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/taskflow/component"
)

// Component owns a Client for the lifetime of the process. The client is
// built in Start so configuration errors surface during startup.
type Component struct {
	cfg    Config
	client *Client
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent returns an unstarted component for cfg.
func NewComponent(cfg Config) *Component {
	return &Component{cfg: cfg}
}

func (c *Component) Name() string {
	if c.cfg.Name != "" {
		return c.cfg.Name
	}
	return defaultName
}

// Start builds the client. The effective configuration replaces cfg.
func (c *Component) Start(context.Context) error {
	client, err := New(c.cfg)
	if err != nil {
		return err
	}
	c.client, c.cfg = client, client.Config()
	return nil
}

// Stop drops idle connections. The client stays usable.
func (c *Component) Stop(context.Context) error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

// Health is healthy once Start succeeded. The remote end is not probed.
func (c *Component) Health(context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.client == nil {
		h.Status, h.Message = component.StatusUnhealthy, "not started"
	}
	return h
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: fmt.Sprintf("%s timeout=%s max_body=%d", c.cfg.BaseURL, c.cfg.Timeout, c.cfg.MaxBodyBytes),
	}
}

// Client returns the client built by Start, or nil before that.
func (c *Component) Client() *Client {
	return c.client
}
