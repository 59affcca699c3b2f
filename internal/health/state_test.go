package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCheckBeforeFirstReport(t *testing.T) {
	s := New("web-1", 3, 10*time.Second)

	// No base timestamp yet, so no amount of elapsed time is a miss.
	require.Equal(t, OutcomeFresh, s.Check(base.Add(time.Hour)))
	require.Equal(t, 0, s.Misses())
	require.True(t, s.Last().IsZero())
}

func TestCheckGrowingAllowance(t *testing.T) {
	s := New("web-1", 3, 10*time.Second)
	s.Report(base)

	t.Run("boundary is not a miss", func(t *testing.T) {
		require.Equal(t, OutcomeFresh, s.Check(base.Add(10*time.Second)))
		require.Equal(t, 0, s.Misses())
	})

	t.Run("first miss past 1x threshold", func(t *testing.T) {
		require.Equal(t, OutcomeMissed, s.Check(base.Add(10*time.Second+time.Millisecond)))
		require.Equal(t, 1, s.Misses())
	})

	t.Run("allowance doubles, still measured from the original report", func(t *testing.T) {
		require.Equal(t, OutcomeFresh, s.Check(base.Add(15*time.Second)))
		require.Equal(t, 1, s.Misses())

		require.Equal(t, OutcomeMissed, s.Check(base.Add(20*time.Second+time.Millisecond)))
		require.Equal(t, 2, s.Misses())
	})

	t.Run("third failed check exhausts the budget", func(t *testing.T) {
		require.Equal(t, OutcomeFresh, s.Check(base.Add(30*time.Second)))
		require.Equal(t, OutcomeStale, s.Check(base.Add(30*time.Second+time.Millisecond)))
		require.Equal(t, 3, s.Misses())
	})
}

func TestMissNeverMovesBaseTimestamp(t *testing.T) {
	s := New("db-0", 3, 10*time.Second)
	s.Report(base)

	s.Check(base.Add(11 * time.Second))
	s.Check(base.Add(21 * time.Second))
	require.Equal(t, 2, s.Misses())
	require.Equal(t, base, s.Last())
}

func TestReportClearsMisses(t *testing.T) {
	t.Run("report with no misses is not a recovery", func(t *testing.T) {
		s := New("web-1", 3, 10*time.Second)
		require.False(t, s.Report(base))
		require.False(t, s.Report(base.Add(5*time.Second)))
	})

	t.Run("report after misses recovers", func(t *testing.T) {
		s := New("web-1", 3, 10*time.Second)
		s.Report(base)
		s.Check(base.Add(11 * time.Second))
		s.Check(base.Add(21 * time.Second))

		ts := base.Add(22 * time.Second)
		require.True(t, s.Report(ts))
		require.Equal(t, 0, s.Misses())
		require.Equal(t, ts, s.Last())

		// The next check runs against the fresh base with a 1x allowance.
		require.Equal(t, OutcomeFresh, s.Check(ts.Add(10*time.Second)))
		require.Equal(t, OutcomeMissed, s.Check(ts.Add(10*time.Second+time.Millisecond)))
	})
}

func TestResetRestartsCycle(t *testing.T) {
	s := New("cache-2", 3, 10*time.Second)
	s.Report(base)

	// Drive the record to Stale.
	require.Equal(t, OutcomeMissed, s.Check(base.Add(11*time.Second)))
	require.Equal(t, OutcomeMissed, s.Check(base.Add(21*time.Second)))
	require.Equal(t, OutcomeStale, s.Check(base.Add(31*time.Second)))

	handled := base.Add(31 * time.Second)
	s.Reset(handled)
	require.Equal(t, 0, s.Misses())
	require.Equal(t, handled, s.Last())

	// A second stale episode needs the full miss sequence again.
	require.Equal(t, OutcomeFresh, s.Check(handled.Add(10*time.Second)))
	require.Equal(t, OutcomeMissed, s.Check(handled.Add(11*time.Second)))
	require.Equal(t, OutcomeMissed, s.Check(handled.Add(21*time.Second)))
	require.Equal(t, OutcomeStale, s.Check(handled.Add(31*time.Second)))
}

func TestSilentFor(t *testing.T) {
	s := New("web-1", 3, 10*time.Second)
	require.Equal(t, time.Duration(0), s.SilentFor(base))

	s.Report(base)
	require.Equal(t, 42*time.Second, s.SilentFor(base.Add(42*time.Second)))
}

func TestSnapshot(t *testing.T) {
	s := New("web-1", 3, 10*time.Second)
	s.Report(base)
	s.Check(base.Add(11 * time.Second))

	snap := s.Snapshot()
	require.Equal(t, "web-1", snap.Name)
	require.Equal(t, base, snap.Last)
	require.Equal(t, 1, snap.Misses)
	require.False(t, snap.Healthy())

	// Snapshot is a copy; mutating the record does not change it.
	s.Report(base.Add(12 * time.Second))
	require.Equal(t, 1, snap.Misses)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "Fresh", OutcomeFresh.String())
	require.Equal(t, "Missed", OutcomeMissed.String())
	require.Equal(t, "Stale", OutcomeStale.String())
	require.Equal(t, "Unknown", Outcome(99).String())
}
