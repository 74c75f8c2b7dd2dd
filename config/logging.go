package config

import (
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-parachain/log"
)

const defaultLoggingLevel = zapcore.InfoLevel

// LoggerConfig holds the encoder and the logging level for each module.
type LoggerConfig struct {
	Encoder        string `mapstructure:"log-encoder"`
	AppLoggerLevel string `mapstructure:"app"`
	VerifierLevel  string `mapstructure:"verifier"`
}

// DefaultLoggingConfig logs as plain text at info level.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:        log.ConsoleFormat,
		AppLoggerLevel: defaultLoggingLevel.String(),
		VerifierLevel:  defaultLoggingLevel.String(),
	}
}
