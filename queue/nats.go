package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/arloliu/vigil/types"
)

// DefaultSubject is the NATS subject heartbeats travel on.
const DefaultSubject = "vigil.heartbeat"

// NATS is a heartbeat queue backed by core NATS publish/subscribe, for
// workers that run as separate processes.
//
// Send publishes the heartbeat's JSON wire form; publishing is buffered
// client-side and does not wait for the server. Receive lazily creates
// one synchronous subscription (the monitor is the only consumer) whose
// pending message limit equals the queue capacity: when the monitor falls
// behind, the NATS client drops new messages, which realizes the bounded
// drop-on-full contract across process boundaries.
type NATS struct {
	nc       *nats.Conn
	subject  string
	capacity int

	mu     sync.Mutex
	sub    *nats.Subscription
	closed bool
}

// Compile-time assertion that NATS implements Queue.
var _ types.Queue = (*NATS)(nil)

// NewNATS creates a NATS-backed queue on the given subject.
//
// The connection is caller-owned: Close unsubscribes but leaves the
// connection open for other uses.
//
// Parameters:
//   - nc: Established NATS connection
//   - subject: Subject heartbeats travel on (DefaultSubject if empty)
//   - capacity: Bound on undelivered heartbeats (values < 1 are clamped to 1)
//
// Returns:
//   - *NATS: Initialized queue
//
// Example:
//
//	nc, _ := nats.Connect(nats.DefaultURL)
//	q := queue.NewNATS(nc, "", 2*workerCount)
func NewNATS(nc *nats.Conn, subject string, capacity int) *NATS {
	if subject == "" {
		subject = DefaultSubject
	}
	if capacity < 1 {
		capacity = 1
	}

	return &NATS{nc: nc, subject: subject, capacity: capacity}
}

// Send publishes hb without waiting for the server.
func (q *NATS) Send(hb types.Heartbeat) error {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()

	if closed {
		return types.ErrQueueClosed
	}

	data, err := json.Marshal(hb)
	if err != nil {
		return fmt.Errorf("failed to encode heartbeat: %w", err)
	}

	if err := q.nc.Publish(q.subject, data); err != nil {
		if errors.Is(err, nats.ErrConnectionClosed) {
			return types.ErrQueueClosed
		}

		return fmt.Errorf("failed to publish heartbeat: %w", err)
	}

	return nil
}

// Receive waits up to timeout for the next heartbeat.
func (q *NATS) Receive(timeout time.Duration) (types.Heartbeat, error) {
	sub, err := q.subscription()
	if err != nil {
		return types.Heartbeat{}, err
	}

	msg, err := sub.NextMsg(timeout)
	if errors.Is(err, nats.ErrSlowConsumer) {
		// Messages were dropped at the pending limit. The signal is
		// one-shot; buffered heartbeats are still deliverable.
		msg, err = sub.NextMsg(timeout)
	}

	switch {
	case err == nil:
	case errors.Is(err, nats.ErrTimeout):
		return types.Heartbeat{}, types.ErrQueueEmpty
	case errors.Is(err, nats.ErrBadSubscription), errors.Is(err, nats.ErrConnectionClosed):
		return types.Heartbeat{}, types.ErrQueueClosed
	default:
		return types.Heartbeat{}, fmt.Errorf("failed to receive heartbeat: %w", err)
	}

	var hb types.Heartbeat
	if err := json.Unmarshal(msg.Data, &hb); err != nil {
		// A malformed payload is ignored the same way an unknown name is.
		return types.Heartbeat{}, types.ErrQueueEmpty
	}

	return hb, nil
}

// subscription lazily creates the single consumer subscription.
//
// Senders never call Receive, so they never subscribe and never see
// copies of the heartbeat traffic.
func (q *NATS) subscription() (*nats.Subscription, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, types.ErrQueueClosed
	}
	if q.sub != nil {
		return q.sub, nil
	}

	sub, err := q.nc.SubscribeSync(q.subject)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", q.subject, err)
	}

	if err := sub.SetPendingLimits(q.capacity, -1); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("failed to bound subscription: %w", err)
	}

	q.sub = sub

	return sub, nil
}

// Close drops the subscription. The caller-owned connection stays open.
func (q *NATS) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	if q.sub != nil {
		sub := q.sub
		q.sub = nil
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			return fmt.Errorf("failed to unsubscribe: %w", err)
		}
	}

	return nil
}

// Subject returns the subject heartbeats travel on.
func (q *NATS) Subject() string {
	return q.subject
}
