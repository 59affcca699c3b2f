package types

import "errors"

// Sentinel errors for the Vigil library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components return these sentinels for known conditions and
// wrap external errors with context using fmt.Errorf("...: %w", err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Monitor, Queue)
//   - Expected control conditions are sentinels too, so callers can
//     branch on them without string matching

// Monitor errors - Public API errors returned by the Monitor component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrQueueRequired is returned when the heartbeat queue is nil.
	ErrQueueRequired = errors.New("heartbeat queue is required")

	// ErrSourceRequired is returned when the process source is nil.
	ErrSourceRequired = errors.New("process source is required")

	// ErrPublisherRequired is returned when the escalation publisher is nil.
	ErrPublisherRequired = errors.New("escalation publisher is required")

	// ErrAlreadyStarted is returned when Start is called on a running monitor.
	ErrAlreadyStarted = errors.New("monitor already started")

	// ErrNotStarted is returned when operations require a started monitor.
	ErrNotStarted = errors.New("monitor not started")

	// ErrNoProcesses is returned when the process source yields an empty set.
	ErrNoProcesses = errors.New("no processes to monitor")
)

// Queue errors - Expected control conditions of the heartbeat queue.
var (
	// ErrQueueFull is returned by Send when the bounded capacity is
	// exhausted. Senders treat this as a drop, not a failure.
	ErrQueueFull = errors.New("heartbeat queue is full")

	// ErrQueueEmpty is returned by Receive when the timeout elapses with
	// nothing to deliver (expected condition for a polling consumer).
	ErrQueueEmpty = errors.New("heartbeat queue is empty")

	// ErrQueueClosed is returned once the queue has been closed.
	ErrQueueClosed = errors.New("heartbeat queue is closed")
)
