package types

// MonitorMetrics records events observed by the monitor loop.
type MonitorMetrics interface {
	// RecordStateTransition records a monitor lifecycle transition.
	RecordStateTransition(from, to State)

	// RecordReport records a heartbeat routed to a watched process.
	RecordReport(name string)

	// RecordRecovery records a report that cleared outstanding misses.
	RecordRecovery(name string)

	// RecordMiss records a failed staleness check.
	// misses is the consecutive miss count after the check.
	RecordMiss(name string, misses int)

	// RecordEscalation records a process declared stale and handed to the
	// publisher.
	RecordEscalation(name string)

	// RecordUnknownReport records a heartbeat for a name outside the
	// watched set.
	RecordUnknownReport()
}

// SenderMetrics records events observed by heartbeat senders.
type SenderMetrics interface {
	// RecordHeartbeatSent records a heartbeat send attempt.
	// ok is false when the heartbeat was dropped or the transport
	// rejected it.
	RecordHeartbeatSent(name string, ok bool)
}

// MetricsCollector collects metrics from all watchdog components.
//
// Implementations must be safe for concurrent use; senders and the monitor
// loop record from different goroutines. A no-op implementation is used
// when no collector is configured, so components never nil-check.
type MetricsCollector interface {
	MonitorMetrics
	SenderMetrics
}
