package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vigiltest "github.com/arloliu/vigil/testing"
	"github.com/arloliu/vigil/types"
)

// primeSubscription forces the lazy consumer subscription into existence
// so subsequently published heartbeats are captured. Core NATS has no
// replay; a subscription only sees messages published after it exists.
func primeSubscription(t *testing.T, q *NATS) {
	t.Helper()
	_, err := q.Receive(10 * time.Millisecond)
	require.ErrorIs(t, err, types.ErrQueueEmpty)
}

func TestNATS_SendReceive(t *testing.T) {
	_, nc := vigiltest.StartEmbeddedNATS(t)

	monitorQ := NewNATS(nc, "vigil.test.roundtrip", 8)
	defer monitorQ.Close()
	primeSubscription(t, monitorQ)

	senderQ := NewNATS(nc, "vigil.test.roundtrip", 8)
	defer senderQ.Close()

	sent := types.Heartbeat{Name: "web-1", Timestamp: time.Now().Truncate(time.Millisecond)}
	require.NoError(t, senderQ.Send(sent))
	require.NoError(t, nc.Flush())

	got, err := monitorQ.Receive(time.Second)
	require.NoError(t, err)
	require.Equal(t, "web-1", got.Name)
	require.WithinDuration(t, sent.Timestamp, got.Timestamp, time.Millisecond)
}

func TestNATS_ReceiveTimeout(t *testing.T) {
	_, nc := vigiltest.StartEmbeddedNATS(t)

	q := NewNATS(nc, "vigil.test.timeout", 8)
	defer q.Close()

	start := time.Now()
	_, err := q.Receive(50 * time.Millisecond)
	require.ErrorIs(t, err, types.ErrQueueEmpty)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestNATS_OverflowDropsInsteadOfBlocking(t *testing.T) {
	_, nc := vigiltest.StartEmbeddedNATS(t)

	const capacity = 2
	const published = 30

	q := NewNATS(nc, "vigil.test.overflow", capacity)
	defer q.Close()
	primeSubscription(t, q)

	for i := 0; i < published; i++ {
		require.NoError(t, q.Send(types.Heartbeat{Name: "flood", Timestamp: time.Now()}))
	}
	require.NoError(t, nc.Flush())
	time.Sleep(50 * time.Millisecond)

	received := 0
	for {
		if _, err := q.Receive(50 * time.Millisecond); err != nil {
			break
		}
		received++
	}

	require.Positive(t, received)
	require.Less(t, received, published, "pending limit must have dropped heartbeats")
	require.LessOrEqual(t, received, capacity+1)
}

func TestNATS_MalformedPayloadIgnored(t *testing.T) {
	_, nc := vigiltest.StartEmbeddedNATS(t)

	q := NewNATS(nc, "vigil.test.malformed", 8)
	defer q.Close()
	primeSubscription(t, q)

	require.NoError(t, nc.Publish("vigil.test.malformed", []byte("not a heartbeat")))
	require.NoError(t, nc.Flush())

	_, err := q.Receive(100 * time.Millisecond)
	require.ErrorIs(t, err, types.ErrQueueEmpty)

	// The queue keeps working after swallowing garbage.
	require.NoError(t, q.Send(types.Heartbeat{Name: "web-1", Timestamp: time.Now()}))
	require.NoError(t, nc.Flush())

	got, err := q.Receive(time.Second)
	require.NoError(t, err)
	require.Equal(t, "web-1", got.Name)
}

func TestNATS_Close(t *testing.T) {
	_, nc := vigiltest.StartEmbeddedNATS(t)

	q := NewNATS(nc, "vigil.test.close", 8)
	primeSubscription(t, q)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close(), "close is idempotent")

	require.ErrorIs(t, q.Send(types.Heartbeat{Name: "web-1"}), types.ErrQueueClosed)
	_, err := q.Receive(10 * time.Millisecond)
	require.ErrorIs(t, err, types.ErrQueueClosed)

	// The caller-owned connection is untouched.
	require.False(t, nc.IsClosed())
	require.NoError(t, nc.Publish("vigil.test.close.other", []byte("x")))
}

func TestNATS_Defaults(t *testing.T) {
	_, nc := vigiltest.StartEmbeddedNATS(t)

	q := NewNATS(nc, "", 0)
	defer q.Close()

	require.Equal(t, DefaultSubject, q.Subject())
	require.Equal(t, 1, q.capacity)
}
