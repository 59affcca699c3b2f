package queue

import (
	"sync"
	"time"

	"github.com/arloliu/vigil/types"
)

// Buffered is an in-process heartbeat queue backed by a buffered channel.
//
// It implements the many-producer single-consumer contract for
// deployments where the workers are goroutines of the monitoring process.
type Buffered struct {
	ch   chan types.Heartbeat
	done chan struct{}
	once sync.Once
}

// Compile-time assertion that Buffered implements Queue.
var _ types.Queue = (*Buffered)(nil)

// NewBuffered creates an in-process queue with the given capacity.
//
// Parameters:
//   - capacity: Maximum buffered heartbeats (values < 1 are clamped to 1)
//
// Returns:
//   - *Buffered: Initialized queue
func NewBuffered(capacity int) *Buffered {
	if capacity < 1 {
		capacity = 1
	}

	return &Buffered{
		ch:   make(chan types.Heartbeat, capacity),
		done: make(chan struct{}),
	}
}

// NewBufferedFor sizes the queue for workerCount workers with
// slotsPerWorker buffered heartbeats each.
//
// Parameters:
//   - workerCount: Number of heartbeat-emitting workers
//   - slotsPerWorker: Buffer slots reserved per worker (typically 2)
//
// Returns:
//   - *Buffered: Initialized queue with capacity workerCount*slotsPerWorker
func NewBufferedFor(workerCount, slotsPerWorker int) *Buffered {
	return NewBuffered(workerCount * slotsPerWorker)
}

// Send enqueues hb without blocking.
//
// Returns ErrQueueFull when the buffer is at capacity and ErrQueueClosed
// after Close.
func (q *Buffered) Send(hb types.Heartbeat) error {
	select {
	case <-q.done:
		return types.ErrQueueClosed
	default:
	}

	select {
	case q.ch <- hb:
		return nil
	case <-q.done:
		return types.ErrQueueClosed
	default:
		return types.ErrQueueFull
	}
}

// Receive waits up to timeout for the next heartbeat.
//
// Returns ErrQueueEmpty when the timeout elapses and ErrQueueClosed once
// the queue is closed and drained.
func (q *Buffered) Receive(timeout time.Duration) (types.Heartbeat, error) {
	// Drain buffered heartbeats before honoring a concurrent Close.
	select {
	case hb := <-q.ch:
		return hb, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case hb := <-q.ch:
		return hb, nil
	case <-q.done:
		return types.Heartbeat{}, types.ErrQueueClosed
	case <-timer.C:
		return types.Heartbeat{}, types.ErrQueueEmpty
	}
}

// Close marks the queue closed. Idempotent; never fails.
func (q *Buffered) Close() error {
	q.once.Do(func() {
		close(q.done)
	})

	return nil
}

// Capacity returns the bounded capacity.
func (q *Buffered) Capacity() int {
	return cap(q.ch)
}

// Len returns the number of currently buffered heartbeats.
func (q *Buffered) Len() int {
	return len(q.ch)
}
