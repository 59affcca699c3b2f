package types

import "time"

// Queue is the bounded transport carrying heartbeats from many senders to
// a single monitor.
//
// Implementations must be safe for concurrent Send from multiple
// goroutines or processes. Receive is only ever called by one consumer,
// the monitor loop.
//
// Capacity is expected to be small (slots per worker × worker count); a
// full queue means the monitor is keeping up poorly, and dropping the
// newest heartbeat is the correct response because another one follows
// within a report interval.
type Queue interface {
	// Send enqueues a heartbeat without blocking.
	//
	// Returns ErrQueueFull when the bounded capacity is exhausted and
	// ErrQueueClosed after Close. Callers treat ErrQueueFull as a drop,
	// not a failure.
	Send(hb Heartbeat) error

	// Receive waits up to timeout for the next heartbeat.
	//
	// Returns ErrQueueEmpty when the timeout elapses with nothing to
	// deliver and ErrQueueClosed after Close. Both are expected control
	// conditions for a polling consumer.
	Receive(timeout time.Duration) (Heartbeat, error)

	// Close releases transport resources. Further Send and Receive calls
	// return ErrQueueClosed. Close is idempotent.
	Close() error
}
