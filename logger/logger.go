package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for structured logging
type Logger interface {
	// Info logs an informational message
	Info(msg string, fields ...Field)

	// Error logs an error message
	Error(msg string, err error, fields ...Field)

	// Debug logs a debug message
	Debug(msg string, fields ...Field)

	// WithFields returns a logger with additional fields
	WithFields(fields ...Field) Logger

	// Sync flushes any buffered log entries
	Sync() error
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Error creates an error field
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with any value
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// zapLogger implements the Logger interface on top of a zap core
type zapLogger struct {
	logger *zap.Logger
}

// NewLoggerWithLevel creates a logger writing to w. Debug entries are only
// written when verbose is set.
func NewLoggerWithLevel(w io.Writer, verbose bool) Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.RFC3339TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return &zapLogger{logger: zap.New(core)}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() Logger {
	return &zapLogger{logger: zap.NewNop()}
}

// Info logs an informational message
func (l *zapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, toZap(fields)...)
}

// Error logs an error message
func (l *zapLogger) Error(msg string, err error, fields ...Field) {
	allFields := append([]Field{Error(err)}, fields...)
	l.logger.Error(msg, toZap(allFields)...)
}

// Debug logs a debug message
func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, toZap(fields)...)
}

// WithFields returns a logger with additional fields
func (l *zapLogger) WithFields(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(toZap(fields)...)}
}

// Sync flushes any buffered log entries
func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

func toZap(fields []Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			zapFields = append(zapFields, zap.NamedError(field.Key, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}
	return zapFields
}
