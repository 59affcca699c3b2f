package vigil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/vigil/internal/health"
	"github.com/arloliu/vigil/internal/hooks"
	"github.com/arloliu/vigil/logging"
	"github.com/arloliu/vigil/metrics"
	"github.com/arloliu/vigil/types"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

// Monitor watches a fleet of worker processes for heartbeat liveness.
//
// Monitor is the main entry point of the Vigil library. It handles:
//   - Consuming heartbeats from a bounded multi-producer queue
//   - Per-process staleness tracking with a growing silence allowance
//   - Escalating stale processes through a Publisher, once per episode
//   - Optimistic seeding so a fresh fleet gets a full allowance at boot
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Liveness records are mutated only by the single consumer loop
//   - Read accessors serve lock-free snapshots refreshed by the loop
//
// Lifecycle:
//   - Create with NewMonitor()
//   - Call Start() to discover processes and begin consuming
//   - Use hooks to react to recoveries and escalations
//   - Call Stop() for graceful shutdown
//
// Testing:
// Consumers can define minimal interfaces for mocking:
//
//	type Watchdog interface {
//	    Start(ctx context.Context) error
//	    Stop(ctx context.Context) error
//	}
type Monitor struct {
	cfg       Config
	queue     Queue
	source    ProcessSource
	publisher Publisher

	// Optional dependencies
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger

	// Liveness records, owned by the consumer loop
	states map[string]*health.State

	// Lock-free read-side copies, refreshed by the loop after every mutation
	snapshots *xsync.Map[string, types.ProcessHealth]

	// Instance id for log correlation
	id string

	// State management
	state atomic.Int32 // State

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

// NewMonitor creates a new Monitor instance with the provided configuration.
//
// The Monitor consumes heartbeats from the queue, tracks per-process
// staleness with an allowance that grows per consecutive miss, and hands
// stale processes to the publisher.
//
// Returns a concrete *Monitor struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration with parsed durations
//   - queue: Bounded multi-producer queue heartbeats arrive on
//   - source: Process source consulted once at Start for the watched set
//   - publisher: Escalation endpoint for stale processes
//   - opts: Optional configuration (hooks, metrics, logger)
//
// Returns:
//   - *Monitor: Initialized monitor instance
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := vigil.DefaultConfig()
//	q := queue.NewBufferedFor(3, cfg.QueueSlotsPerWorker)
//	src := source.NewStatic("web-1", "web-2", "indexer")
//	mon, err := vigil.NewMonitor(&cfg, q, src, publisher.NewLogging(logger))
func NewMonitor(cfg *Config, queue Queue, source ProcessSource, publisher Publisher, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if queue == nil {
		return nil, ErrQueueRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}
	if publisher == nil {
		return nil, ErrPublisherRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Apply options
	options := &monitorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nopHooks := hooks.NewNop()
		hooksInstance = &nopHooks
	}

	m := &Monitor{
		cfg:       *cfg,
		queue:     queue,
		source:    source,
		publisher: publisher,
		hooks:     hooksInstance,
		metrics:   metricsCollector,
		logger:    loggerInstance,
		snapshots: xsync.NewMap[string, types.ProcessHealth](),
		id:        uuid.NewString(),
	}

	// Initialize state
	m.state.Store(int32(StateInit))

	return m, nil
}

// Start discovers the watched set and launches the consumer loop.
//
// The process source is consulted exactly once; processes appearing later
// need a new monitor. Each record is seeded with last = now so a process
// that is slow to send its first heartbeat still gets the full allowance.
//
// Parameters:
//   - ctx: Context bounding process discovery only; the monitor's
//     lifetime is governed by Stop, not by this context
//
// Returns:
//   - error: ErrAlreadyStarted, ErrNoProcesses, or a source error
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.ctx != nil {
		m.mu.Unlock()

		return ErrAlreadyStarted
	}

	// Create monitor context detached from the startup context
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.mu.Unlock()

	names, err := m.source.ListProcesses(ctx)
	if err != nil {
		m.abortStart()

		return fmt.Errorf("failed to list processes: %w", err)
	}
	if len(names) == 0 {
		m.abortStart()

		return ErrNoProcesses
	}

	// Seed records optimistically so nothing can go stale at boot
	now := time.Now()
	m.states = make(map[string]*health.State, len(names))
	for _, name := range names {
		st := health.New(name, m.cfg.MaxMisses, m.cfg.MissThreshold)
		st.Reset(now)
		m.states[name] = st
		m.snapshots.Store(name, st.Snapshot())
	}

	m.logger.Info("monitor starting",
		"monitor_id", m.id,
		"processes", len(m.states),
		"max_misses", m.cfg.MaxMisses,
		"miss_threshold", m.cfg.MissThreshold,
		"poll_timeout", m.cfg.PollTimeout,
	)

	m.transitionState(StateInit, StateRunning)

	m.wg.Add(1)
	go m.consumeLoop()

	return nil
}

// abortStart rolls back a failed Start so it can be retried.
func (m *Monitor) abortStart() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancel()
	m.ctx = nil
	m.cancel = nil
}

// Stop gracefully shuts down the monitor.
//
// The consumer loop observes the cancellation at the top of its next
// iteration, so shutdown latency is bounded by PollTimeout plus one
// sweep. The injected queue is not closed; the caller owns it.
//
// Safe to call multiple times - subsequent calls will return ErrNotStarted.
//
// Parameters:
//   - ctx: Context for shutdown timeout (further bounded by ShutdownTimeout)
//
// Returns:
//   - error: Shutdown error or timeout
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()

	// Check if already stopped or never started
	if m.ctx == nil {
		m.mu.Unlock()

		return ErrNotStarted
	}

	currentState := m.State()

	// Start is still discovering processes; it owns its own context and
	// there is no loop to stop yet
	if currentState == StateInit {
		m.mu.Unlock()

		return ErrNotStarted
	}

	// Check if already shutting down (concurrent Stop() call)
	if currentState == StateStopping || currentState == StateStopped {
		m.mu.Unlock()

		return ErrNotStarted
	}

	m.transitionState(currentState, StateStopping)

	// Cancel monitor context to stop the consumer loop
	m.cancel()

	// Note: Keep m.ctx (even though cancelled) instead of setting to nil
	// so hook goroutines can still use it in their select statements
	m.mu.Unlock()

	// Bound the wait by both the caller's context and the grace period
	waitCtx, cancel := context.WithTimeout(ctx, m.cfg.ShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("monitor stopped gracefully", "monitor_id", m.id)

		return nil
	case <-waitCtx.Done():
		m.logError("shutdown timeout exceeded, consumer loop may still be running")

		return waitCtx.Err()
	}
}

// consumeLoop is the single consumer: it routes queued heartbeats to
// liveness records and runs a staleness sweep every iteration.
//
// The loop transitions the monitor to StateStopped itself, so the state
// converges even when Stop gives up waiting.
func (m *Monitor) consumeLoop() {
	defer m.wg.Done()

	queueClosed := false

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Debug("consumer loop stopping (context cancelled)", "monitor_id", m.id)
			m.transitionState(m.State(), StateStopped)

			return
		default:
		}

		hb, err := m.queue.Receive(m.cfg.PollTimeout)
		switch {
		case err == nil:
			m.route(hb)
		case errors.Is(err, ErrQueueEmpty):
			// Expected control state: nothing arrived within the poll
			// timeout. The sweep below still runs.
		case errors.Is(err, ErrQueueClosed):
			if !queueClosed {
				queueClosed = true
				m.logger.Warn("heartbeat queue closed, continuing staleness sweeps", "monitor_id", m.id)
			}
			// A closed queue returns immediately; pace the sweep cadence
			m.pause()
		default:
			m.logError("failed to receive heartbeat", "error", err)
			m.pause()
		}

		m.sweep(time.Now())
	}
}

// pause waits one poll interval or until shutdown, whichever comes first.
func (m *Monitor) pause() {
	select {
	case <-m.ctx.Done():
	case <-time.After(m.cfg.PollTimeout):
	}
}

// route applies one heartbeat to the matching liveness record.
//
// Unknown names are ignored, not escalated: a misconfigured sender must
// not page anyone.
func (m *Monitor) route(hb Heartbeat) {
	st, ok := m.states[hb.Name]
	if !ok {
		m.logger.Debug("ignoring heartbeat from unknown process", "process", hb.Name)
		m.metrics.RecordUnknownReport()

		return
	}

	m.metrics.RecordReport(hb.Name)

	cleared := st.Misses()
	if recovered := st.Report(hb.Timestamp); recovered {
		m.logger.Info("process recovered",
			"process", hb.Name,
			"misses_cleared", cleared,
		)
		m.metrics.RecordRecovery(hb.Name)

		if m.hooks.OnRecovered != nil {
			// Run hook in background to avoid blocking the consumer loop
			go func() {
				if err := m.hooks.OnRecovered(m.ctx, hb.Name, cleared); err != nil {
					m.logError("recovery hook error", "process", hb.Name, "error", err)
				}
			}()
		}
	} else {
		m.logger.Debug("heartbeat received", "process", hb.Name)
	}

	m.snapshots.Store(hb.Name, st.Snapshot())
}

// sweep checks every liveness record against now.
func (m *Monitor) sweep(now time.Time) {
	for name, st := range m.states {
		switch st.Check(now) {
		case health.OutcomeFresh:
			continue

		case health.OutcomeMissed:
			m.logger.Info("missed health check",
				"process", name,
				"misses", st.Misses(),
				"max_misses", m.cfg.MaxMisses,
				"silent_for", st.SilentFor(now),
			)
			m.metrics.RecordMiss(name, st.Misses())

		case health.OutcomeStale:
			m.metrics.RecordMiss(name, st.Misses())
			m.escalate(name, st, now)
		}

		m.snapshots.Store(name, st.Snapshot())
	}
}

// escalate hands a stale process to the publisher and re-bases its record.
//
// The record is re-based before publishing so the next sweep starts a
// fresh episode regardless of how long the publisher takes.
func (m *Monitor) escalate(name string, st *health.State, now time.Time) {
	silentFor := st.SilentFor(now)
	st.Reset(now)

	m.logger.Warn("process stale, escalating",
		"process", name,
		"silent_for", silentFor,
		"monitor_id", m.id,
	)

	// Publish errors are logged, not retried; delivery guarantees belong
	// to the publisher implementation
	if err := m.publisher.Publish(m.ctx, name); err != nil {
		m.logError("failed to publish escalation", "process", name, "error", err)
	}

	m.metrics.RecordEscalation(name)

	if m.hooks.OnEscalated != nil {
		// Run hook in background to avoid blocking the consumer loop
		go func() {
			if err := m.hooks.OnEscalated(m.ctx, name, silentFor); err != nil {
				m.logError("escalation hook error", "process", name, "error", err)
			}
		}()
	}
}

// State returns the current monitor lifecycle state.
//
// Returns:
//   - State: Current state
func (m *Monitor) State() State {
	return State(m.state.Load())
}

// ID returns the monitor instance id used for log correlation.
func (m *Monitor) ID() string {
	return m.id
}

// Health returns the latest liveness snapshot for one process.
//
// The boolean reports whether the name is in the watched set.
func (m *Monitor) Health(name string) (ProcessHealth, bool) {
	return m.snapshots.Load(name)
}

// Snapshot returns the latest snapshot of every watched process, sorted
// by name.
//
// Snapshots are refreshed by the consumer loop after every mutation, so
// readers observe state at most one loop iteration old.
func (m *Monitor) Snapshot() []ProcessHealth {
	result := make([]ProcessHealth, 0, m.snapshots.Size())
	m.snapshots.Range(func(_ string, ph types.ProcessHealth) bool {
		result = append(result, ph)

		return true
	})

	slices.SortFunc(result, func(a, b ProcessHealth) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result
}

// Processes returns the watched process names, sorted.
//
// Returns:
//   - []string: Names from the process source (empty before Start)
func (m *Monitor) Processes() []string {
	names := make([]string, 0, m.snapshots.Size())
	m.snapshots.Range(func(name string, _ types.ProcessHealth) bool {
		names = append(names, name)

		return true
	})

	slices.Sort(names)

	return names
}

// WaitState waits for the monitor to reach the expected state within the timeout period.
//
// This method is useful for testing and synchronization scenarios where you need to
// wait for the monitor to reach a specific state before proceeding.
//
// The method returns a read-only channel that will receive exactly one value:
//   - nil if the expected state is reached within the timeout
//   - context.DeadlineExceeded if the timeout expires before reaching the state
//
// The channel is closed after sending the result, allowing safe use in select statements.
//
// Parameters:
//   - expectedState: The state to wait for
//   - timeout: Maximum duration to wait for the state
//
// Returns:
//   - <-chan error: A channel that receives the result (nil on success, error on timeout)
//
// Example:
//
//	// Wait for the monitor to finish shutting down
//	errCh := mon.WaitState(vigil.StateStopped, 5*time.Second)
//	if err := <-errCh; err != nil {
//	    log.Printf("monitor did not stop: %v", err)
//	}
func (m *Monitor) WaitState(expectedState State, timeout time.Duration) <-chan error {
	ch := make(chan error, 1) // Buffered to prevent goroutine leak

	go func() {
		defer close(ch)

		// Check if already in expected state
		if m.State() == expectedState {
			ch <- nil

			return
		}

		// Poll for state changes
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		timeoutTimer := time.NewTimer(timeout)
		defer timeoutTimer.Stop()

		for {
			select {
			case <-ticker.C:
				if m.State() == expectedState {
					ch <- nil

					return
				}
			case <-timeoutTimer.C:
				ch <- context.DeadlineExceeded

				return
			}
		}
	}()

	return ch
}

// transitionState transitions to a new state and triggers hooks.
func (m *Monitor) transitionState(from, to State) {
	// Validate state transition
	if !m.isValidTransition(from, to) {
		m.logError("invalid state transition attempted",
			"from", from.String(),
			"to", to.String(),
		)

		return
	}

	m.state.Store(int32(to)) //nolint:gosec // State values are controlled enum

	m.logger.Info("state transition",
		"from", from.String(),
		"to", to.String(),
		"monitor_id", m.id,
	)

	// Trigger state change hook
	if m.hooks.OnStateChanged != nil {
		// Run hook in background to avoid blocking the consumer loop
		go func() {
			if err := m.hooks.OnStateChanged(m.ctx, from, to); err != nil {
				m.logError("state change hook error", "from", from, "to", to, "error", err)
			}
		}()
	}

	// Record metrics (always non-nil, defaults to nop collector)
	m.metrics.RecordStateTransition(from, to)
}

// isValidTransition validates that a state transition is allowed.
//
// Returns:
//   - bool: true if transition is valid, false otherwise
func (m *Monitor) isValidTransition(from, to State) bool {
	// Define valid state transitions
	validTransitions := map[State][]State{
		StateInit:     {StateRunning, StateStopped},
		StateRunning:  {StateStopping},
		StateStopping: {StateStopped},
		StateStopped:  {}, // Terminal state - no transitions allowed
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, allowed := range allowedStates {
		if allowed == to {
			return true
		}
	}

	return false
}

// logError logs an error message.
func (m *Monitor) logError(msg string, keysAndValues ...any) {
	// Logger is always non-nil (defaults to nop logger)
	m.logger.Error(msg, keysAndValues...)
}
