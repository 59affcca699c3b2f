package publisher

import (
	"context"

	"github.com/arloliu/vigil/types"
)

// Logging records escalations through a structured logger.
//
// Useful when recovery is owned by an operator or an external log
// pipeline rather than an in-band daemon, and as the default endpoint in
// single-process setups.
type Logging struct {
	logger types.Logger
}

// Compile-time assertion that Logging implements Publisher.
var _ types.Publisher = (*Logging)(nil)

// NewLogging creates a publisher that logs escalations at error level.
//
// Parameters:
//   - logger: Logger to record escalations with
//
// Returns:
//   - *Logging: Initialized publisher
func NewLogging(logger types.Logger) *Logging {
	return &Logging{logger: logger}
}

// Publish records the stale process name.
func (p *Logging) Publish(_ context.Context, name string) error {
	p.logger.Error("process declared stale", "process", name)

	return nil
}
