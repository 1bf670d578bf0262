package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "SELECTBOX_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks SELECTBOX_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	// stdout belongs to the terminal widget and to the printed selection
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the SELECTBOX_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger and returns a function restoring
// the previous one. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) (restore func()) {
	prev := logger
	logger = l
	return func() { logger = prev }
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogFetch logs a remote option request for a widget.
func LogFetch(widget string, generation uint64, url string) {
	Debug("Fetching options",
		zap.String("widget", widget),
		zap.Uint64("generation", generation),
		zap.String("url", url),
	)
}

// LogFetchResult logs how a remote option request settled.
func LogFetchResult(widget string, generation uint64, count int, err error) {
	if err != nil {
		Warn("Option fetch failed",
			zap.String("widget", widget),
			zap.Uint64("generation", generation),
			zap.Error(err),
		)
		return
	}
	Debug("Option fetch completed",
		zap.String("widget", widget),
		zap.Uint64("generation", generation),
		zap.Int("options", count),
	)
}

// LogStaleResult logs a fetch result that was dropped because a newer
// request superseded it or the widget was torn down.
func LogStaleResult(widget string, generation, latest uint64) {
	Debug("Discarding stale fetch result",
		zap.String("widget", widget),
		zap.Uint64("generation", generation),
		zap.Uint64("latest", latest),
	)
}

// LogSelection logs a committed selection change.
func LogSelection(widget string, value *string) {
	v := "<none>"
	if value != nil {
		v = *value
	}
	Info("Selection changed",
		zap.String("widget", widget),
		zap.String("value", v),
	)
}

// LogUsageWarning logs a developer-facing misuse that does not stop the widget.
func LogUsageWarning(widget, code, message string) {
	Warn(message,
		zap.String("widget", widget),
		zap.String("code", code),
	)
}

// LogHTTPRequest logs an HTTP request served by the demo option source.
func LogHTTPRequest(remoteAddr string, method string, path string, status int) {
	Info("HTTP request",
		zap.String("remote_addr", remoteAddr),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
	)
}

// LogWebSocketMessage logs a WebSocket frame exchanged with an option source.
func LogWebSocketMessage(remoteAddr string, direction string, data []byte) {
	Debug("WebSocket message",
		zap.String("remote_addr", remoteAddr),
		zap.String("direction", direction),
		zap.Int("length", len(data)),
		zap.String("content", truncate(string(data), 256)),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
