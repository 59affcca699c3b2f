// Package metrics provides MetricsCollector implementations: a no-op
// default and a Prometheus-backed collector.
package metrics

import "github.com/arloliu/vigil/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	collector := metrics.NewNop()
//	mon, err := vigil.NewMonitor(&cfg, queue, src, pub, vigil.WithMetrics(collector))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// MonitorMetrics implementation

// RecordStateTransition discards the state transition metric.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.State) {
	// No-op
}

// RecordReport discards the report metric.
func (n *NopMetrics) RecordReport(_ /* name */ string) {
	// No-op
}

// RecordRecovery discards the recovery metric.
func (n *NopMetrics) RecordRecovery(_ /* name */ string) {
	// No-op
}

// RecordMiss discards the miss metric.
func (n *NopMetrics) RecordMiss(_ /* name */ string, _ /* misses */ int) {
	// No-op
}

// RecordEscalation discards the escalation metric.
func (n *NopMetrics) RecordEscalation(_ /* name */ string) {
	// No-op
}

// RecordUnknownReport discards the unknown report metric.
func (n *NopMetrics) RecordUnknownReport() {
	// No-op
}

// SenderMetrics implementation

// RecordHeartbeatSent discards the heartbeat send metric.
func (n *NopMetrics) RecordHeartbeatSent(_ /* name */ string, _ /* ok */ bool) {
	// No-op
}
