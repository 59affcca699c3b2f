package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/vigil/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric names follow <namespace>_<subsystem>_<name>; the monitor loop
// records under the "monitor" subsystem and heartbeat senders under
// "sender". Process names become label values, which is safe because the
// watched set is fixed at monitor start.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	transitions    *prometheus.CounterVec
	reports        *prometheus.CounterVec
	recoveries     *prometheus.CounterVec
	misses         *prometheus.CounterVec
	currentMisses  *prometheus.GaugeVec
	escalations    *prometheus.CounterVec
	unknownReports prometheus.Counter
	heartbeats     *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "vigil" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "vigil"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "state_transitions_total",
			Help:      "Total monitor lifecycle transitions by from/to state.",
		}, []string{"from", "to"})

		p.reports = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "reports_total",
			Help:      "Total heartbeats routed to a watched process.",
		}, []string{"process"})

		p.recoveries = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "recoveries_total",
			Help:      "Total reports that cleared outstanding misses.",
		}, []string{"process"})

		p.misses = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "misses_total",
			Help:      "Total failed staleness checks.",
		}, []string{"process"})

		p.currentMisses = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "process_misses",
			Help:      "Current consecutive miss count per process.",
		}, []string{"process"})

		p.escalations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "escalations_total",
			Help:      "Total processes declared stale and handed to the publisher.",
		}, []string{"process"})

		p.unknownReports = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "unknown_reports_total",
			Help:      "Total heartbeats ignored because the name is not watched.",
		})

		p.heartbeats = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sender",
			Name:      "heartbeats_sent_total",
			Help:      "Total heartbeat send attempts by result (ok, dropped).",
		}, []string{"process", "result"})

		p.reg.MustRegister(p.transitions)
		p.reg.MustRegister(p.reports)
		p.reg.MustRegister(p.recoveries)
		p.reg.MustRegister(p.misses)
		p.reg.MustRegister(p.currentMisses)
		p.reg.MustRegister(p.escalations)
		p.reg.MustRegister(p.unknownReports)
		p.reg.MustRegister(p.heartbeats)
	})
}

// MonitorMetrics implementation

// RecordStateTransition counts a monitor lifecycle transition.
func (p *PrometheusCollector) RecordStateTransition(from, to types.State) {
	p.ensureRegistered()
	p.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordReport counts a heartbeat routed to a watched process.
func (p *PrometheusCollector) RecordReport(name string) {
	p.ensureRegistered()
	p.reports.WithLabelValues(name).Inc()
	p.currentMisses.WithLabelValues(name).Set(0)
}

// RecordRecovery counts a report that cleared outstanding misses.
func (p *PrometheusCollector) RecordRecovery(name string) {
	p.ensureRegistered()
	p.recoveries.WithLabelValues(name).Inc()
}

// RecordMiss counts a failed staleness check and tracks the current streak.
func (p *PrometheusCollector) RecordMiss(name string, misses int) {
	p.ensureRegistered()
	p.misses.WithLabelValues(name).Inc()
	p.currentMisses.WithLabelValues(name).Set(float64(misses))
}

// RecordEscalation counts an escalation and clears the miss streak gauge.
func (p *PrometheusCollector) RecordEscalation(name string) {
	p.ensureRegistered()
	p.escalations.WithLabelValues(name).Inc()
	p.currentMisses.WithLabelValues(name).Set(0)
}

// RecordUnknownReport counts a heartbeat ignored due to an unwatched name.
func (p *PrometheusCollector) RecordUnknownReport() {
	p.ensureRegistered()
	p.unknownReports.Inc()
}

// SenderMetrics implementation

// RecordHeartbeatSent counts a heartbeat send attempt.
func (p *PrometheusCollector) RecordHeartbeatSent(name string, ok bool) {
	p.ensureRegistered()

	result := "ok"
	if !ok {
		result = "dropped"
	}
	p.heartbeats.WithLabelValues(name, result).Inc()
}
