package vigil

import "github.com/arloliu/vigil/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the
// `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `vigil`
// package, while still providing a convenient `vigil.State`,
// `vigil.Logger`, etc. for users.
type (
	State         = types.State
	Heartbeat     = types.Heartbeat
	ProcessHealth = types.ProcessHealth
)

// Re-export interfaces from the types subpackage for convenience.
type (
	Queue            = types.Queue
	Publisher        = types.Publisher
	PublisherFunc    = types.PublisherFunc
	ProcessSource    = types.ProcessSource
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export State constants from the types subpackage.
const (
	StateInit     = types.StateInit
	StateRunning  = types.StateRunning
	StateStopping = types.StateStopping
	StateStopped  = types.StateStopped
)
