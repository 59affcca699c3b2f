package source

import (
	"context"
	"sync"

	"github.com/arloliu/vigil/types"
)

// Static implements a process source with a fixed list of process names.
type Static struct {
	mu    sync.RWMutex
	names []string
}

var _ types.ProcessSource = (*Static)(nil)

// NewStatic creates a new static process source.
//
// The source returns a fixed list of process names that never changes.
// Useful for testing and for deployments where the watched set is known
// at startup.
//
// Parameters:
//   - names: Fixed list of process names
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic("web-1", "web-2", "indexer")
//	mon, err := vigil.NewMonitor(&cfg, queue, src, pub)
//	if err != nil { /* handle */ }
func NewStatic(names ...string) *Static {
	s := &Static{names: make([]string, len(names))}
	copy(s.names, names)

	return s
}

// ListProcesses returns the static list of process names.
//
// Returns:
//   - []string: The fixed list of process names
//   - error: Always nil (never fails)
func (s *Static) ListProcesses(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.names))
	copy(result, s.names)

	return result, nil
}

// Update replaces the process name list.
//
// The monitor consults its source once at startup, so an Update only
// affects monitors started afterwards. This is useful for tests that
// start several monitors against one source.
//
// Parameters:
//   - names: New list of process names
func (s *Static) Update(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.names = make([]string, len(names))
	copy(s.names, names)
}
