// Package types provides core type definitions and interfaces for the Vigil library.
//
// This package contains shared types that are used across multiple packages in the
// Vigil library. By keeping these types in a separate package, we avoid import cycles
// between the main vigil package and its internal implementations.
//
// Key types:
//   - State: Monitor lifecycle state
//   - Heartbeat: Liveness report message with its JSON wire form
//   - ProcessHealth: Read-only liveness snapshot of one process
//   - Queue: Bounded many-producer single-consumer heartbeat transport
//   - Publisher: Escalation boundary for stale processes
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
