// Package health implements per-process liveness bookkeeping: miss
// counting against a staleness allowance that grows with each consecutive
// miss.
package health

import (
	"time"

	"github.com/arloliu/vigil/types"
)

// Outcome is the tagged result of a staleness check.
type Outcome int

const (
	// OutcomeFresh means the process is within its current allowance.
	OutcomeFresh Outcome = iota

	// OutcomeMissed means the check failed but the miss budget is not
	// exhausted yet.
	OutcomeMissed

	// OutcomeStale means the miss budget is exhausted; the caller must
	// escalate and re-base the record.
	OutcomeStale
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFresh:
		return "Fresh"
	case OutcomeMissed:
		return "Missed"
	case OutcomeStale:
		return "Stale"
	default:
		return "Unknown"
	}
}

// State tracks the liveness of a single process.
//
// State is pure bookkeeping: transitions report what happened through
// return values and leave logging and escalation to the caller. A State
// is owned by the monitor loop and is not safe for concurrent use; use
// Snapshot to export a copy for readers.
type State struct {
	name          string
	maxMisses     int
	missThreshold time.Duration

	last   time.Time
	misses int
}

// New creates a liveness record for one process.
//
// The record starts with no report on file. Checks are no-ops until the
// first Report or Reset establishes a base timestamp.
func New(name string, maxMisses int, missThreshold time.Duration) *State {
	return &State{
		name:          name,
		maxMisses:     maxMisses,
		missThreshold: missThreshold,
	}
}

// Report records a heartbeat produced at ts and clears the miss count.
//
// Returns true when the report recovered the process, i.e. there were
// outstanding misses before this report.
func (s *State) Report(ts time.Time) (recovered bool) {
	recovered = s.misses > 0
	s.misses = 0
	s.last = ts

	return recovered
}

// Check evaluates staleness at time now.
//
// The allowance grows with every consecutive miss: the process fails the
// check when now is more than missThreshold*(misses+1) past the base
// timestamp. The base timestamp is never moved by a miss, so the
// allowance compounds against the same fixed point until a report or a
// reset re-bases it.
//
// A failed check increments the miss count and yields OutcomeMissed, or
// OutcomeStale once the count reaches maxMisses.
func (s *State) Check(now time.Time) Outcome {
	if s.last.IsZero() {
		return OutcomeFresh
	}

	allowance := time.Duration(s.misses+1) * s.missThreshold
	if now.Sub(s.last) <= allowance {
		return OutcomeFresh
	}

	s.misses++
	if s.misses >= s.maxMisses {
		return OutcomeStale
	}

	return OutcomeMissed
}

// Reset re-bases the record: zero misses, base timestamp now.
//
// The monitor uses Reset to seed records optimistically at startup and to
// restart the cycle after an escalation has been handed to the publisher.
func (s *State) Reset(now time.Time) {
	s.misses = 0
	s.last = now
}

// Name returns the process name this record tracks.
func (s *State) Name() string {
	return s.name
}

// Last returns the base timestamp (zero before the first report or reset).
func (s *State) Last() time.Time {
	return s.last
}

// Misses returns the consecutive miss count.
func (s *State) Misses() int {
	return s.misses
}

// SilentFor returns how long the process has been silent as of now.
func (s *State) SilentFor(now time.Time) time.Duration {
	if s.last.IsZero() {
		return 0
	}

	return now.Sub(s.last)
}

// Snapshot returns a read-only copy of the record.
func (s *State) Snapshot() types.ProcessHealth {
	return types.ProcessHealth{
		Name:   s.name,
		Last:   s.last,
		Misses: s.misses,
	}
}
