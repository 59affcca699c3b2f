package vigil

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// Timing Configuration Model
// ============================================================================
//
// Vigil uses three timings that interlock for predictable staleness
// detection:
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ ReportInterval - How often workers send heartbeats                     │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ • Each sender enqueues one heartbeat per interval                      │
// │ • Shorter intervals detect failures faster but add queue traffic      │
// └─────────────────────────────────────────────────────────────────────────┘
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ MissThreshold - Base silence allowance before a check fails            │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ • The allowance grows with consecutive misses:                         │
// │   MissThreshold*(misses+1), measured from the last report              │
// │ • A miss never moves the base timestamp, so the allowance compounds    │
// │   against one fixed point until a report or escalation re-bases it     │
// └─────────────────────────────────────────────────────────────────────────┘
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ PollTimeout - Consumer loop pacing                                     │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ • Upper bound on each queue receive; the loop checks every watched     │
// │   process after every receive, hit or timeout                         │
// │ • Keeps detection latency within one PollTimeout of the allowance      │
// └─────────────────────────────────────────────────────────────────────────┘
//
// Escalation Flow Example (defaults: MaxMisses=3, MissThreshold=10s):
//
//	T+0s:   Last heartbeat received (base = T+0s)
//	T+10s+: First failed check  → miss 1 of 3 (allowance was 10s)
//	T+20s+: Second failed check → miss 2 of 3 (allowance was 20s)
//	T+30s+: Third failed check  → stale, escalate once, re-base to now
//
// Configuration Constraints:
//   - MissThreshold >= 2 * ReportInterval (allow one missed heartbeat)
//   - PollTimeout < MissThreshold (check faster than misses accrue)
//
// ============================================================================

// Config is the configuration for the Monitor.
//
// All duration fields accept standard Go duration strings like "50ms", "5s", "1m".
type Config struct {
	// MaxMisses is the number of consecutive failed checks before a process
	// is declared stale and escalated.
	// Recommended: 3.
	MaxMisses int `yaml:"maxMisses"`

	// ReportInterval is how often heartbeat senders enqueue a report.
	// Shorter intervals provide faster failure detection but increase queue traffic.
	// Recommended: 5 seconds.
	ReportInterval time.Duration `yaml:"reportInterval"`

	// MissThreshold is the base silence allowance before a staleness check
	// fails. The effective allowance grows with each consecutive miss:
	// MissThreshold*(misses+1), measured from the last report.
	// Must be at least 2*ReportInterval.
	// Recommended: 10 seconds.
	MissThreshold time.Duration `yaml:"missThreshold"`

	// PollTimeout is the upper bound on each queue receive in the consumer
	// loop. It paces staleness checks: every watched process is checked
	// after each receive, whether or not a heartbeat arrived.
	// Recommended: 50 milliseconds.
	PollTimeout time.Duration `yaml:"pollTimeout"`

	// QueueSlotsPerWorker sizes the bounded heartbeat queue relative to the
	// watched process count: capacity = QueueSlotsPerWorker * processes.
	// Two slots absorb one full reporting cycle of jitter per worker.
	// Recommended: 2.
	QueueSlotsPerWorker int `yaml:"queueSlotsPerWorker"`

	// ShutdownTimeout is the maximum time to wait for the consumer loop to
	// drain and exit during Stop.
	// Recommended: 10 seconds.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		MaxMisses:           3,
		ReportInterval:      5 * time.Second,
		MissThreshold:       10 * time.Second,
		PollTimeout:         50 * time.Millisecond,
		QueueSlotsPerWorker: 2,
		ShutdownTimeout:     10 * time.Second,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.MaxMisses == 0 {
		cfg.MaxMisses = defaults.MaxMisses
	}
	if cfg.ReportInterval == 0 {
		cfg.ReportInterval = defaults.ReportInterval
	}
	if cfg.MissThreshold == 0 {
		cfg.MissThreshold = defaults.MissThreshold
	}
	if cfg.PollTimeout == 0 {
		cfg.PollTimeout = defaults.PollTimeout
	}
	if cfg.QueueSlotsPerWorker == 0 {
		cfg.QueueSlotsPerWorker = defaults.QueueSlotsPerWorker
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - MaxMisses >= 1 (at least one failed check before escalation)
//   - ReportInterval > 0 (senders must have a cadence)
//   - MissThreshold >= 2 * ReportInterval (allow one missed heartbeat)
//   - PollTimeout > 0 and < MissThreshold (check faster than misses accrue)
//   - QueueSlotsPerWorker >= 1 (queue must hold one heartbeat per worker)
//   - ShutdownTimeout > 0 (shutdown must be bounded)
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	// Rule 1: MaxMisses sanity
	if cfg.MaxMisses < 1 {
		return fmt.Errorf("MaxMisses must be >= 1, got %d", cfg.MaxMisses)
	}

	// Rule 2: ReportInterval sanity
	if cfg.ReportInterval <= 0 {
		return fmt.Errorf("ReportInterval must be > 0, got %v", cfg.ReportInterval)
	}

	// Rule 3: MissThreshold vs ReportInterval
	if cfg.MissThreshold < 2*cfg.ReportInterval {
		return fmt.Errorf(
			"MissThreshold (%v) must be >= 2*ReportInterval (%v) to allow one missed heartbeat",
			cfg.MissThreshold, cfg.ReportInterval,
		)
	}

	// Rule 4: PollTimeout sanity
	if cfg.PollTimeout <= 0 {
		return fmt.Errorf("PollTimeout must be > 0, got %v", cfg.PollTimeout)
	}

	// Rule 5: PollTimeout vs MissThreshold
	if cfg.PollTimeout >= cfg.MissThreshold {
		return fmt.Errorf(
			"PollTimeout (%v) must be < MissThreshold (%v) to check faster than misses accrue",
			cfg.PollTimeout, cfg.MissThreshold,
		)
	}

	// Rule 6: QueueSlotsPerWorker sanity
	if cfg.QueueSlotsPerWorker < 1 {
		return fmt.Errorf("QueueSlotsPerWorker must be >= 1, got %d", cfg.QueueSlotsPerWorker)
	}

	// Rule 7: ShutdownTimeout sanity
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("ShutdownTimeout must be > 0, got %v", cfg.ShutdownTimeout)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewMonitor() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	// Warn if a single failed check escalates immediately
	if cfg.MaxMisses == 1 {
		logger.Warn(
			"MaxMisses of 1 escalates on the first failed check",
			"maxMisses", cfg.MaxMisses,
			"recommended", 3,
		)
	}

	// Warn if the loop paces slower than heartbeats arrive
	if cfg.PollTimeout > cfg.ReportInterval {
		logger.Warn(
			"PollTimeout above ReportInterval delays heartbeat routing",
			"pollTimeout", cfg.PollTimeout,
			"reportInterval", cfg.ReportInterval,
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are 10-100x faster than production defaults to enable
// rapid iteration without sacrificing test coverage. Use DefaultConfig()
// for production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := vigil.TestConfig()
//	mon, err := vigil.NewMonitor(&cfg, queue, src, pub)
func TestConfig() Config {
	cfg := DefaultConfig()

	// Fast timings for test execution (10-100x faster)
	cfg.ReportInterval = 50 * time.Millisecond // 100x faster
	cfg.MissThreshold = 120 * time.Millisecond // ~83x faster
	cfg.PollTimeout = 10 * time.Millisecond    // 5x faster
	cfg.ShutdownTimeout = 2 * time.Second      // 5x faster

	return cfg
}

// LoadConfig loads configuration from a YAML file.
//
// Missing values are filled with defaults and the result is validated
// before it is returned.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Error if the file cannot be read, parsed, or validated
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
