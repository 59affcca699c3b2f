package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/arloliu/vigil/types"
)

// DefaultSubject is the NATS subject escalations are broadcast on.
const DefaultSubject = "vigil.escalation"

// NATS broadcasts stale process names over core NATS.
//
// The payload is the process name in UTF-8; recovery daemons subscribe to
// the subject and decide what restarting means for their deployment.
// Publishing is fire-and-forget: no acknowledgment is awaited, matching
// the at-most-once escalation contract.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// Compile-time assertion that NATS implements Publisher.
var _ types.Publisher = (*NATS)(nil)

// NewNATS creates a NATS escalation publisher.
//
// The connection is caller-owned and is not closed by this type.
//
// Parameters:
//   - nc: Established NATS connection
//   - subject: Subject to broadcast on (DefaultSubject if empty)
//
// Returns:
//   - *NATS: Initialized publisher
func NewNATS(nc *nats.Conn, subject string) *NATS {
	if subject == "" {
		subject = DefaultSubject
	}

	return &NATS{nc: nc, subject: subject}
}

// Publish broadcasts the stale process name.
func (p *NATS) Publish(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.nc.Publish(p.subject, []byte(name)); err != nil {
		if errors.Is(err, nats.ErrConnectionClosed) {
			return fmt.Errorf("escalation connection closed: %w", err)
		}

		return fmt.Errorf("failed to publish escalation for %s: %w", name, err)
	}

	return nil
}

// Subject returns the subject escalations are broadcast on.
func (p *NATS) Subject() string {
	return p.subject
}
