// Package config contains the configuration of the candidate tooling.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-parachain/backing"
	"github.com/spacemeshos/go-parachain/candidates"
	"github.com/spacemeshos/go-parachain/metrics"
)

// Config defines the top level configuration.
type Config struct {
	Preset     string             `mapstructure:"preset"`
	Candidates candidates.Config  `mapstructure:"candidates"`
	Backing    backing.Config     `mapstructure:"backing"`
	Metrics    metrics.PushConfig `mapstructure:"metrics"`
	Logging    LoggerConfig       `mapstructure:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Candidates: candidates.DefaultConfig(),
		Backing:    backing.DefaultConfig(),
		Metrics:    metrics.DefaultPushConfig(),
		Logging:    DefaultLoggingConfig(),
	}
}

// LoadConfig reads the config file at path from fs into vip.
func LoadConfig(fs afero.Fs, path string, vip *viper.Viper) error {
	vip.SetFs(fs)
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

// Unmarshal decodes the settings loaded into vip over cfg. Unknown keys are an error.
func Unmarshal(vip *viper.Viper, cfg *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
