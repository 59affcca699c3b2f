package vigil

// Option configures a Monitor with optional dependencies.
type Option func(*monitorOptions)

// monitorOptions holds optional Monitor configuration.
type monitorOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
}

// WithHooks sets lifecycle and escalation event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewMonitor
//
// Example:
//
//	hooks := &vigil.Hooks{
//	    OnEscalated: func(ctx context.Context, name string, silentFor time.Duration) error {
//	        return page(name, silentFor)
//	    },
//	}
//	mon, err := vigil.NewMonitor(&cfg, queue, src, pub, vigil.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *monitorOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewMonitor
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "vigil")
//	mon, err := vigil.NewMonitor(&cfg, queue, src, pub, vigil.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *monitorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewMonitor
//
// Example:
//
//	logger := logging.NewZap(zap.NewExample().Sugar())
//	mon, err := vigil.NewMonitor(&cfg, queue, src, pub, vigil.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *monitorOptions) {
		o.logger = logger
	}
}
