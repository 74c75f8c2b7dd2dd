package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/parachain.toml", []byte(`
[candidates]
claim-queue-depth = 5
workers = 2

[backing]
elastic-scaling = true

[logging]
log-encoder = "json"
verifier = "debug"
`), 0o600))

	vip := viper.New()
	require.NoError(t, LoadConfig(fs, "/etc/parachain.toml", vip))

	cfg := DefaultConfig()
	require.NoError(t, Unmarshal(vip, &cfg))
	require.EqualValues(t, 5, cfg.Candidates.ClaimQueueDepth)
	require.Equal(t, 2, cfg.Candidates.Workers)
	require.Equal(t, DefaultConfig().Candidates.CacheSize, cfg.Candidates.CacheSize)
	require.True(t, cfg.Backing.ElasticScaling)
	require.Equal(t, DefaultConfig().Backing.MinBackingVotes, cfg.Backing.MinBackingVotes)
	require.Equal(t, "json", cfg.Logging.Encoder)
	require.Equal(t, "debug", cfg.Logging.VerifierLevel)
	require.Equal(t, "info", cfg.Logging.AppLoggerLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := LoadConfig(afero.NewMemMapFs(), "/missing.toml", viper.New())
	require.ErrorContains(t, err, "read config file /missing.toml")
}

func TestUnmarshalUnknownKey(t *testing.T) {
	vip := viper.New()
	vip.Set("candidates.claim-queue-depht", 4)

	cfg := DefaultConfig()
	err := Unmarshal(vip, &cfg)
	require.ErrorContains(t, err, "claim-queue-depht")
}

func TestUnmarshalMetricsHeaders(t *testing.T) {
	vip := viper.New()
	vip.Set("metrics.push-url", "http://pushgateway:9091")
	vip.Set("metrics.push-headers", map[string]string{"tenant": "relay"})

	cfg := DefaultConfig()
	require.NoError(t, Unmarshal(vip, &cfg))
	require.Equal(t, "http://pushgateway:9091", cfg.Metrics.URL)
	require.Equal(t, "relay", cfg.Metrics.Headers["tenant"])
	require.Equal(t, DefaultConfig().Metrics.Job, cfg.Metrics.Job)
}
