package types

import "context"

// Publisher receives escalations for processes declared stale.
//
// The monitor calls Publish exactly once per stale episode and does not
// wait for an acknowledgment. What happens next (restart, page, log) is
// entirely the publisher's concern; the monitor has already re-based the
// process record by the time Publish is invoked.
//
// Publish errors are logged by the monitor and not retried. A publisher
// needing delivery guarantees must implement them internally.
type Publisher interface {
	// Publish reports that the named process went stale.
	Publish(ctx context.Context, name string) error
}

// PublisherFunc adapts a plain function to the Publisher interface.
type PublisherFunc func(ctx context.Context, name string) error

// Publish calls f(ctx, name).
func (f PublisherFunc) Publish(ctx context.Context, name string) error {
	return f(ctx, name)
}
