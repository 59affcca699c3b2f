package heartbeat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arloliu/vigil/logging"
	"github.com/arloliu/vigil/metrics"
	"github.com/arloliu/vigil/types"
)

// Common errors for sender operations.
var (
	ErrNotStarted     = errors.New("sender not started")
	ErrAlreadyStarted = errors.New("sender already started")
	ErrNoProcessName  = errors.New("process name not set")
)

// Sender emits periodic heartbeats for one process onto the shared queue.
//
// The sender never blocks the process it reports for: enqueue is
// non-blocking and a full queue means the heartbeat is dropped. Dropping
// is safe because heartbeats are idempotent liveness signals and the next
// one follows within an interval.
type Sender struct {
	queue    types.Queue
	name     string
	interval time.Duration
	logger   types.Logger
	metrics  types.MetricsCollector

	mu      sync.Mutex
	ctx     context.Context
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ticker  *time.Ticker
}

// New creates a new heartbeat sender.
//
// The interval should be well below the monitor's staleness threshold;
// the monitor validates missThreshold >= 2*reportInterval so that one
// dropped or delayed heartbeat never counts as a miss.
//
// Parameters:
//   - queue: Shared heartbeat queue (injected, not owned)
//   - name: Process name to report for
//   - interval: Heartbeat period (typically 5s)
//
// Returns:
//   - *Sender: New heartbeat sender instance
//
// Example:
//
//	sender := heartbeat.New(queue, "web-1", 5*time.Second)
//	if err := sender.Start(ctx); err != nil { /* handle */ }
//	defer sender.Stop()
func New(queue types.Queue, name string, interval time.Duration) *Sender {
	return &Sender{
		queue:    queue,
		name:     name,
		interval: interval,
		logger:   logging.NewNop(),
		metrics:  metrics.NewNop(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetLogger sets the logger for send events.
//
// Optional. Must be called before Start().
//
// Parameters:
//   - logger: Logger instance
func (s *Sender) SetLogger(logger types.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger = logger
}

// SetMetrics sets the metrics collector for send events.
//
// Optional. Must be called before Start().
//
// Parameters:
//   - metrics: Metrics collector instance
func (s *Sender) SetMetrics(metrics types.MetricsCollector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics = metrics
}

// Start begins sending heartbeats in the background.
//
// Sends the first heartbeat immediately, then at regular intervals.
// Continues until Stop() is called or ctx is cancelled; cancellation is
// how a worker leaving its serving state silences its heartbeat.
//
// Parameters:
//   - ctx: Context bounding the sending loop
//
// Returns:
//   - error: ErrAlreadyStarted if already running, ErrNoProcessName if the name is empty
func (s *Sender) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	if s.name == "" {
		return ErrNoProcessName
	}

	s.started = true
	s.ctx = ctx
	s.ticker = time.NewTicker(s.interval)

	// First heartbeat immediately; a drop here is as harmless as anywhere.
	s.send()

	go s.sendLoop()

	return nil
}

// Stop stops the heartbeat sender.
//
// Blocks until the sending goroutine exits. The queue is injected and is
// not closed here.
//
// Returns:
//   - error: ErrNotStarted if not running
func (s *Sender) Stop() error {
	s.mu.Lock()

	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}

	s.ticker.Stop()
	close(s.stopCh)
	s.started = false

	s.mu.Unlock()

	// Wait for goroutine to finish
	<-s.doneCh

	return nil
}

// sendLoop is the background goroutine that emits heartbeats.
func (s *Sender) sendLoop() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.ctx.Done():
			s.logger.Debug("heartbeat sender context cancelled", "process", s.name)
			return
		case <-s.ticker.C:
			s.send()
		}
	}
}

// send enqueues one heartbeat without blocking.
func (s *Sender) send() {
	hb := types.Heartbeat{Name: s.name, Timestamp: time.Now()}

	s.logger.Debug("sending heartbeat", "process", s.name)

	err := s.queue.Send(hb)
	switch {
	case err == nil:
		s.metrics.RecordHeartbeatSent(s.name, true)
	case errors.Is(err, types.ErrQueueFull), errors.Is(err, types.ErrQueueClosed):
		// Expected drop conditions, not failures.
		s.logger.Debug("heartbeat dropped", "process", s.name, "reason", err)
		s.metrics.RecordHeartbeatSent(s.name, false)
	default:
		s.logger.Warn("failed to send heartbeat", "process", s.name, "error", err)
		s.metrics.RecordHeartbeatSent(s.name, false)
	}
}

// Name returns the process name this sender reports for.
//
// Returns:
//   - string: Process name
func (s *Sender) Name() string {
	return s.name
}

// IsStarted returns whether the sender is currently running.
//
// Returns:
//   - bool: true if started, false otherwise
func (s *Sender) IsStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.started
}
