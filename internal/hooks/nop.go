// Package hooks provides the default no-op lifecycle hooks.
package hooks

import (
	"context"
	"time"

	"github.com/arloliu/vigil/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.State, types.State) error = (*NopHooks)(nil).OnStateChanged
	_ func(context.Context, string, int) error              = (*NopHooks)(nil).OnRecovered
	_ func(context.Context, string, time.Duration) error    = (*NopHooks)(nil).OnEscalated
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnStateChanged: h.OnStateChanged,
		OnRecovered:    h.OnRecovered,
		OnEscalated:    h.OnEscalated,
	}
}

// OnStateChanged is a no-op implementation.
func (h *NopHooks) OnStateChanged(ctx context.Context, from, to types.State) error {
	return nil
}

// OnRecovered is a no-op implementation.
func (h *NopHooks) OnRecovered(ctx context.Context, name string, misses int) error {
	return nil
}

// OnEscalated is a no-op implementation.
func (h *NopHooks) OnEscalated(ctx context.Context, name string, silentFor time.Duration) error {
	return nil
}
