package vigil

import "github.com/arloliu/vigil/types"

// Sentinel errors returned by the Monitor and the queue implementations.
//
// These alias the definitions in the types subpackage so errors.Is matches
// no matter which import path produced the error.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrQueueRequired is returned when the heartbeat queue is nil.
	ErrQueueRequired = types.ErrQueueRequired

	// ErrSourceRequired is returned when the process source is nil.
	ErrSourceRequired = types.ErrSourceRequired

	// ErrPublisherRequired is returned when the escalation publisher is nil.
	ErrPublisherRequired = types.ErrPublisherRequired

	// ErrAlreadyStarted is returned when Start is called on a running monitor.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when Stop is called on a monitor that hasn't been started.
	ErrNotStarted = types.ErrNotStarted

	// ErrNoProcesses is returned when the process source yields an empty set.
	ErrNoProcesses = types.ErrNoProcesses

	// ErrQueueFull is returned by Send when the bounded capacity is exhausted.
	ErrQueueFull = types.ErrQueueFull

	// ErrQueueEmpty is returned by Receive when the timeout elapses with nothing to deliver.
	ErrQueueEmpty = types.ErrQueueEmpty

	// ErrQueueClosed is returned once the queue has been closed.
	ErrQueueClosed = types.ErrQueueClosed
)
