package logging

import (
	"go.uber.org/zap"

	"github.com/arloliu/vigil/types"
)

// ZapLogger implements types.Logger using a zap sugared logger.
//
// The types.Logger method set mirrors zap.SugaredLogger's *w variants, so
// this adapter is a thin forwarding layer kept for symmetry with the slog
// adapter and to pin the dependency direction (components depend on
// types.Logger, never on zap).
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// Compile-time assertion that ZapLogger implements Logger.
var _ types.Logger = (*ZapLogger)(nil)

// NewZap creates a new zap-backed logger.
//
// Parameters:
//   - logger: The sugared zap logger to wrap
//
// Returns:
//   - *ZapLogger: A new logger instance that forwards to zap
//
// Example:
//
//	zl, _ := zap.NewProduction()
//	logger := NewZap(zl.Sugar())
func NewZap(logger *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key-value pairs.
func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Infow(msg, keysAndValues...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key-value pairs.
func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message and exits via zap.
func (l *ZapLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Fatalw(msg, keysAndValues...)
}
