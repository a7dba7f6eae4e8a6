package logger

import (
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
)

// NoopLogger discards everything. Used by tests that don't assert on logs.
type NoopLogger struct{}

// NewNoopLogger creates a logger that discards all output
func NewNoopLogger() core.Logger {
	return NoopLogger{}
}

func (NoopLogger) SetLevel(core.LogLevel)       {}
func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}
func (NoopLogger) Flush() error                 { return nil }
