package types

import "context"

// ProcessSource provides the set of process names the monitor watches.
//
// The source is consulted exactly once, during Start. The watched set is
// fixed for the lifetime of the monitor; heartbeats for names outside the
// set are ignored.
type ProcessSource interface {
	// ListProcesses returns the names of the processes to monitor.
	ListProcesses(ctx context.Context) ([]string, error)
}
