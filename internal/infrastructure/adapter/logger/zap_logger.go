package logger

import (
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts go.uber.org/zap to the core.Logger port
type ZapLogger struct {
	logger *zap.Logger
	level  core.LogLevel
}

// NewZapLogger builds a zap-backed logger. Production mode emits JSON with
// ISO 8601 timestamps; development mode emits colored console output.
func NewZapLogger(isProduction bool) core.Logger {
	var cfg zap.Config
	if isProduction {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"

	// Skip one frame so call sites point at the caller, not this adapter
	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return &ZapLogger{logger: zapLogger, level: core.LogLevelInfo}
}

// NewDefaultLogger returns a development-mode logger
func NewDefaultLogger() core.Logger {
	return NewZapLogger(false)
}

// SetLevel sets the minimum level that produces output
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level = level
}

func (l *ZapLogger) enabled(level core.LogLevel) bool {
	return l.level <= level
}

func toZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

func (l *ZapLogger) Debug(message string, fields map[string]any) {
	if l.enabled(core.LogLevelDebug) {
		l.logger.Debug(message, toZapFields(fields)...)
	}
}

func (l *ZapLogger) Info(message string, fields map[string]any) {
	if l.enabled(core.LogLevelInfo) {
		l.logger.Info(message, toZapFields(fields)...)
	}
}

func (l *ZapLogger) Warn(message string, fields map[string]any) {
	if l.enabled(core.LogLevelWarn) {
		l.logger.Warn(message, toZapFields(fields)...)
	}
}

func (l *ZapLogger) Error(message string, fields map[string]any) {
	if l.enabled(core.LogLevelError) {
		l.logger.Error(message, toZapFields(fields)...)
	}
}

// Flush writes out any buffered log entries
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}
