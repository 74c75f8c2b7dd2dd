// Package log builds the zap loggers used by binaries and carries request scoped
// fields through a context.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stderr

const (
	// ConsoleFormat is a human readable, tab separated format.
	ConsoleFormat = "console"
	// JSONFormat writes one json object per entry.
	JSONFormat = "json"
)

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// New creates a logger with the given name, level and encoder.
func New(name string, level zap.AtomicLevel, encoder zapcore.Encoder) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(core).Named(name)
}

// NewEncoder returns an encoder for one of the supported formats.
func NewEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case ConsoleFormat, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONFormat:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel parses a level name such as "debug" or "INFO".
func ParseLevel(text string) (zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return lvl, fmt.Errorf("parse log level %q: %w", text, err)
	}
	return lvl, nil
}
