package types

import (
	"context"
	"time"
)

// Hooks defines callbacks for monitor lifecycle and escalation events.
//
// All hooks are optional and called asynchronously in background
// goroutines so they cannot stall the consumer loop. Hooks receive the
// monitor's lifecycle context, which is cancelled during shutdown.
//
// Hook execution behavior:
//   - Hooks run concurrently and may not complete before Stop() returns
//   - Hook errors are logged but never fail monitor operations
//   - Escalation side effects belong in the Publisher, not in hooks;
//     hooks are for metrics, tracing, and notifications
type Hooks struct {
	// OnStateChanged is called when the monitor lifecycle state
	// transitions.
	OnStateChanged func(ctx context.Context, from, to State) error

	// OnRecovered is called when a report clears outstanding misses.
	// misses is the count that was cleared.
	OnRecovered func(ctx context.Context, name string, misses int) error

	// OnEscalated is called after a stale process has been handed to the
	// publisher. silentFor is how long the process had been silent when
	// it was declared stale.
	OnEscalated func(ctx context.Context, name string, silentFor time.Duration) error
}
