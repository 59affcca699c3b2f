package types

// State represents the monitor lifecycle state.
//
// States follow a linear progression during normal operation:
//
//	StateInit → StateRunning → StateStopping → StateStopped
//
// StateStopped is terminal. A monitor cannot be restarted; create a new
// instance instead.
type State int

const (
	// StateInit is the initial state before Start is called.
	StateInit State = iota

	// StateRunning indicates the consumer loop is processing heartbeats.
	StateRunning

	// StateStopping indicates a stop was requested and the loop is draining.
	StateStopping

	// StateStopped indicates the consumer loop has exited.
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
