// Package logger is the minimal logging facade used across the SDK. Callers
// plug in any backend by satisfying Logger; the zap implementation in this
// package is the default for executables.
package logger

// Logger records structured diagnostics. Fields may be nil.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// NoopLogger drops everything. It is the default when no logger is configured.
type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}
