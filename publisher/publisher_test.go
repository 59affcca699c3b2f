package publisher

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vigil/logging"
	vigiltest "github.com/arloliu/vigil/testing"
	"github.com/arloliu/vigil/types"
)

func TestNATS_Publish(t *testing.T) {
	t.Run("delivers process name to subscribers", func(t *testing.T) {
		_, nc := vigiltest.StartEmbeddedNATS(t)

		pub := NewNATS(nc, "")
		require.Equal(t, DefaultSubject, pub.Subject())

		sub, err := nc.SubscribeSync(pub.Subject())
		require.NoError(t, err)
		require.NoError(t, nc.Flush())

		err = pub.Publish(context.Background(), "worker-3")
		require.NoError(t, err)

		msg, err := sub.NextMsg(2 * time.Second)
		require.NoError(t, err)
		require.Equal(t, "worker-3", string(msg.Data))
	})

	t.Run("uses custom subject", func(t *testing.T) {
		_, nc := vigiltest.StartEmbeddedNATS(t)

		pub := NewNATS(nc, "ops.watchdog.stale")
		require.Equal(t, "ops.watchdog.stale", pub.Subject())

		sub, err := nc.SubscribeSync("ops.watchdog.stale")
		require.NoError(t, err)
		require.NoError(t, nc.Flush())

		require.NoError(t, pub.Publish(context.Background(), "api-1"))

		msg, err := sub.NextMsg(2 * time.Second)
		require.NoError(t, err)
		require.Equal(t, "api-1", string(msg.Data))
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		_, nc := vigiltest.StartEmbeddedNATS(t)

		pub := NewNATS(nc, "")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := pub.Publish(ctx, "worker-3")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLogging_Publish(t *testing.T) {
	t.Run("records escalation at error level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		pub := NewLogging(logging.NewSlog(slog.New(handler)))

		err := pub.Publish(context.Background(), "worker-7")
		require.NoError(t, err)

		out := buf.String()
		require.Contains(t, out, "level=ERROR")
		require.Contains(t, out, "process declared stale")
		require.Contains(t, out, "process=worker-7")
	})
}

func TestPublisherFunc(t *testing.T) {
	t.Run("adapts plain functions", func(t *testing.T) {
		var got string

		pub := types.PublisherFunc(func(_ context.Context, name string) error {
			got = name

			return nil
		})

		err := pub.Publish(context.Background(), "cache-2")
		require.NoError(t, err)
		require.Equal(t, "cache-2", got)
	})
}
