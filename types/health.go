package types

import "time"

// ProcessHealth is a read-only snapshot of one process's liveness record.
//
// Snapshots are published by the monitor loop after every iteration and can
// be read concurrently with monitoring. They reflect the state as of the
// last completed iteration, not the instant of the call.
type ProcessHealth struct {
	// Name identifies the process.
	Name string

	// Last is the timestamp the staleness window is measured from.
	// It advances on every received report and when the monitor re-bases
	// the record after an escalation.
	Last time.Time

	// Misses is the number of consecutive staleness checks the process
	// has failed since Last.
	Misses int
}

// Healthy reports whether the process has no outstanding misses.
func (h ProcessHealth) Healthy() bool {
	return h.Misses == 0
}
