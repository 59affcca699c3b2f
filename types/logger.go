package types

// Logger defines methods for structured logging.
//
// Compatible with zap.SugaredLogger and other structured loggers; the
// logging package provides adapters for log/slog and zap plus a no-op.
//
// All methods accept the message followed by alternating key-value pairs.
type Logger interface {
	// Debug logs a message at DebugLevel with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at InfoLevel with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at WarnLevel with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at ErrorLevel with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message at FatalLevel and then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
}
