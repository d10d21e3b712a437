package component

import "context"

// HealthStatus is a component's self-reported state.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is one component's report.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// OK reports a healthy status.
func (h Health) OK() bool { return h.Status == StatusHealthy }

// Overall folds reports into the worst status. No reports count as
// healthy.
func Overall(reports []Health) HealthStatus {
	status := StatusHealthy
	for _, h := range reports {
		switch h.Status {
		case StatusHealthy:
		case StatusDegraded:
			status = StatusDegraded
		default:
			return StatusUnhealthy
		}
	}
	return status
}

// Component is a piece of process infrastructure with a lifecycle.
type Component interface {
	// Name is unique within a Registry.
	Name() string
	Start(ctx context.Context) error
	// Stop releases resources. It is only called after a successful Start.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is logged when a component starts.
type Description struct {
	// Name defaults to the component's Name().
	Name string
	// Type is a short category such as "http-client" or "telemetry".
	Type string
	// Details is a one-liner, e.g. "https://httpbin.org/get timeout=10s".
	Details string
}

// Describable components describe themselves in startup logs.
type Describable interface {
	Describe() Description
}
