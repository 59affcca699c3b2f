package testing

import (
	"context"
	"sync"

	"github.com/arloliu/vigil/types"
)

// CapturePublisher is a Publisher that records every escalation it receives.
//
// Tests assert on the recorded names instead of wiring a real broker. All
// methods are safe for concurrent use, so the publisher can be inspected
// while a monitor is still running.
type CapturePublisher struct {
	mu    sync.Mutex
	names []string
	err   error
}

var _ types.Publisher = (*CapturePublisher)(nil)

// NewCapturePublisher creates an empty capture publisher.
func NewCapturePublisher() *CapturePublisher {
	return &CapturePublisher{}
}

// Publish records the process name.
//
// The name is recorded even when a failure is configured via FailWith, so
// tests can verify that escalations happen despite publisher errors.
func (p *CapturePublisher) Publish(_ context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.names = append(p.names, name)

	return p.err
}

// FailWith makes subsequent Publish calls return err. Pass nil to restore
// normal behavior.
func (p *CapturePublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = err
}

// Count returns how many times the given process name was published.
func (p *CapturePublisher) Count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, got := range p.names {
		if got == name {
			n++
		}
	}

	return n
}

// Names returns all published names in call order, duplicates included.
func (p *CapturePublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]string, len(p.names))
	copy(result, p.names)

	return result
}

// Total returns the total number of Publish calls.
func (p *CapturePublisher) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.names)
}
