package vigil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vigil/metrics"
	"github.com/arloliu/vigil/queue"
	"github.com/arloliu/vigil/source"
	vigiltest "github.com/arloliu/vigil/testing"
)

// failingSource simulates a process source that cannot be listed.
type failingSource struct {
	err error
}

func (s *failingSource) ListProcesses(_ /* ctx */ context.Context) ([]string, error) {
	return nil, s.err
}

// newTestMonitor builds a monitor with fast test timings, an in-process
// queue, and a capturing publisher.
func newTestMonitor(t *testing.T, names ...string) (*Monitor, *queue.Buffered, *vigiltest.CapturePublisher) {
	t.Helper()

	cfg := TestConfig()
	q := queue.NewBuffered(8)
	pub := vigiltest.NewCapturePublisher()

	mon, err := NewMonitor(&cfg, q, source.NewStatic(names...), pub,
		WithLogger(vigiltest.NewTestLogger(t)),
	)
	require.NoError(t, err)

	return mon, q, pub
}

func TestNewMonitor_NilSafety(t *testing.T) {
	t.Run("creates monitor without optional dependencies", func(t *testing.T) {
		cfg := TestConfig()
		mon, err := NewMonitor(&cfg, queue.NewBuffered(4), source.NewStatic("web-1"), vigiltest.NewCapturePublisher())
		require.NoError(t, err)
		require.NotNil(t, mon)

		// Optional dependencies should be backed by safe no-op defaults
		require.NotNil(t, mon.hooks)
		require.NotNil(t, mon.metrics)
		require.NotNil(t, mon.logger)

		// Internal helpers must not panic with the defaults in place
		require.NotPanics(t, func() {
			mon.logError("test message", "key", "value")
		})
		require.NotPanics(t, func() {
			mon.transitionState(StateInit, StateRunning)
		})
	})

	t.Run("accepts optional dependencies", func(t *testing.T) {
		cfg := TestConfig()
		hooks := &Hooks{
			OnStateChanged: func(_ context.Context, _, _ State) error { return nil },
		}

		mon, err := NewMonitor(&cfg, queue.NewBuffered(4), source.NewStatic("web-1"), vigiltest.NewCapturePublisher(),
			WithHooks(hooks),
			WithMetrics(metrics.NewNop()),
			WithLogger(vigiltest.NewTestLogger(t)),
		)
		require.NoError(t, err)
		require.NotNil(t, mon)
		require.Same(t, hooks, mon.hooks)
	})
}

func TestNewMonitor_RequiredParameters(t *testing.T) {
	cfg := TestConfig()
	q := queue.NewBuffered(4)
	src := source.NewStatic("web-1")
	pub := vigiltest.NewCapturePublisher()

	t.Run("rejects nil config", func(t *testing.T) {
		mon, err := NewMonitor(nil, q, src, pub)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, mon)
	})

	t.Run("rejects nil queue", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, nil, src, pub)
		require.ErrorIs(t, err, ErrQueueRequired)
		require.Nil(t, mon)
	})

	t.Run("rejects nil source", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, q, nil, pub)
		require.ErrorIs(t, err, ErrSourceRequired)
		require.Nil(t, mon)
	})

	t.Run("rejects nil publisher", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, q, src, nil)
		require.ErrorIs(t, err, ErrPublisherRequired)
		require.Nil(t, mon)
	})
}

func TestNewMonitor_InvalidConfig(t *testing.T) {
	// Negative values survive SetDefaults and must fail validation
	cfg := DefaultConfig()
	cfg.MaxMisses = -1

	mon, err := NewMonitor(&cfg, queue.NewBuffered(4), source.NewStatic("web-1"), vigiltest.NewCapturePublisher())
	require.Error(t, err)
	require.ErrorContains(t, err, "MaxMisses")
	require.Nil(t, mon)
}

func TestMonitor_Lifecycle(t *testing.T) {
	mon, _, _ := newTestMonitor(t, "web-1", "web-2")
	ctx := context.Background()

	require.Equal(t, StateInit, mon.State())

	require.NoError(t, mon.Start(ctx))
	require.Equal(t, StateRunning, mon.State())

	// Second start must fail while the monitor is running
	require.ErrorIs(t, mon.Start(ctx), ErrAlreadyStarted)

	require.NoError(t, mon.Stop(ctx))
	require.Equal(t, StateStopped, mon.State())

	// Second stop reports that nothing is running anymore
	require.ErrorIs(t, mon.Stop(ctx), ErrNotStarted)

	// Health records stay readable after shutdown
	require.Len(t, mon.Snapshot(), 2)
}

func TestMonitor_StopBeforeStart(t *testing.T) {
	mon, _, _ := newTestMonitor(t, "web-1")

	require.ErrorIs(t, mon.Stop(context.Background()), ErrNotStarted)
	require.Equal(t, StateInit, mon.State())
}

func TestMonitor_StartEmptySource(t *testing.T) {
	cfg := TestConfig()
	src := source.NewStatic() // no processes yet
	mon, err := NewMonitor(&cfg, queue.NewBuffered(4), src, vigiltest.NewCapturePublisher(),
		WithLogger(vigiltest.NewTestLogger(t)),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.ErrorIs(t, mon.Start(ctx), ErrNoProcesses)

	// A failed start rolls back, so the monitor is startable once the
	// source has something to watch
	src.Update("web-1")
	require.NoError(t, mon.Start(ctx))
	require.NoError(t, mon.Stop(ctx))
}

func TestMonitor_StartSourceFailure(t *testing.T) {
	cfg := TestConfig()
	src := &failingSource{err: errors.New("registry unavailable")}
	mon, err := NewMonitor(&cfg, queue.NewBuffered(4), src, vigiltest.NewCapturePublisher(),
		WithLogger(vigiltest.NewTestLogger(t)),
	)
	require.NoError(t, err)

	ctx := context.Background()

	err = mon.Start(ctx)
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to list processes")

	// Retrying hits the source again instead of reporting a phantom
	// running monitor
	err = mon.Start(ctx)
	require.ErrorContains(t, err, "failed to list processes")
	require.NotErrorIs(t, err, ErrAlreadyStarted)
}

func TestMonitor_ID(t *testing.T) {
	mon1, _, _ := newTestMonitor(t, "web-1")
	mon2, _, _ := newTestMonitor(t, "web-1")

	require.NotEmpty(t, mon1.ID())
	require.NotEmpty(t, mon2.ID())
	require.NotEqual(t, mon1.ID(), mon2.ID())
}

func TestMonitor_HealthViews(t *testing.T) {
	mon, _, _ := newTestMonitor(t, "web-2", "indexer", "web-1")
	ctx := context.Background()

	// Before Start nothing is watched
	_, ok := mon.Health("web-1")
	require.False(t, ok)
	require.Empty(t, mon.Processes())

	require.NoError(t, mon.Start(ctx))
	defer func() { require.NoError(t, mon.Stop(ctx)) }()

	// Names are reported sorted regardless of source order
	require.Equal(t, []string{"indexer", "web-1", "web-2"}, mon.Processes())

	health, ok := mon.Health("web-1")
	require.True(t, ok)
	require.Equal(t, "web-1", health.Name)
	require.Zero(t, health.Misses)
	require.False(t, health.Last.IsZero())

	_, ok = mon.Health("ghost")
	require.False(t, ok)

	snapshot := mon.Snapshot()
	require.Len(t, snapshot, 3)
	require.Equal(t, "indexer", snapshot[0].Name)
	require.Equal(t, "web-1", snapshot[1].Name)
	require.Equal(t, "web-2", snapshot[2].Name)
}
