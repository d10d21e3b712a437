// Package component defines the lifecycle interface shared by the
// infrastructure pieces of a taskflow process (HTTP client, telemetry).
//
// Components are registered with a Registry, started in registration
// order and stopped in reverse order. The bootstrap package drives the
// registry for the command-line entry point.
//
// # Interfaces
//
//   - Component: core lifecycle interface (Start/Stop/Health)
//   - Describable: one-line startup description
package component
