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
const LogLevelEnvVar = "CONTROLROOM_LOG_LEVEL"

// Initialize creates a new logger writing to stdout.
// If level is empty, it checks CONTROLROOM_LOG_LEVEL.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWithOutput(level, "")
}

// InitializeWithOutput is Initialize with an explicit output path.
// An empty path means stdout.
func InitializeWithOutput(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := "stdout"
	encodeLevel := zapcore.CapitalColorLevelEncoder
	if path != "" {
		output = path
		// no ANSI colours in files
		encodeLevel = zapcore.CapitalLevelEncoder
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = encodeLevel
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l

	return nil
}

// InitializeFromEnv initializes the logger from CONTROLROOM_LOG_LEVEL.
func InitializeFromEnv() error {
	return Initialize("")
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info when explicitly set to something
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
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

// LogSnapshot logs a feed snapshot arriving at the display
func LogSnapshot(count int, err error) {
	if err != nil {
		Warn("Feed snapshot failed, treating as empty",
			zap.Error(err),
		)
		return
	}
	Debug("Feed snapshot received",
		zap.Int("screens", count),
	)
}

// LogTransition logs a view change
func LogTransition(from, to, reason string) {
	Info("View transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("reason", reason),
	)
}

// LogIgnored logs an event that matched no rule in the current view
func LogIgnored(event, state, reason string) {
	Debug("Event ignored",
		zap.String("event", event),
		zap.String("state", state),
		zap.String("reason", reason),
	)
}

// LogRemoteEvent logs a remote-control client lifecycle event
func LogRemoteEvent(remoteAddr, clientID, event string) {
	Info("Remote client event",
		zap.String("remote_addr", remoteAddr),
		zap.String("client_id", clientID),
		zap.String("event", event),
	)
}

// LogHTTPRequest logs a served HTTP request
func LogHTTPRequest(remoteAddr, method, path string, status int) {
	Debug("HTTP request",
		zap.String("remote_addr", remoteAddr),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
