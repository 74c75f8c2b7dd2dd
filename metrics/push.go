package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushConfig configures pushing metrics to a prometheus pushgateway.
type PushConfig struct {
	URL      string            `mapstructure:"push-url"`
	Job      string            `mapstructure:"push-job"`
	Username string            `mapstructure:"push-username"`
	Password string            `mapstructure:"push-password"`
	Headers  map[string]string `mapstructure:"push-headers"`
}

// DefaultPushConfig returns a config with pushing disabled.
func DefaultPushConfig() PushConfig {
	return PushConfig{Job: "parachain"}
}

// Push sends the metrics collected by gatherer to the pushgateway once.
// It is meant for short lived commands that exit before they can be scraped.
func Push(ctx context.Context, cfg PushConfig, gatherer prometheus.Gatherer) error {
	if cfg.URL == "" {
		return nil
	}
	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Add(k, v)
	}
	pusher := push.New(cfg.URL, cfg.Job).Gatherer(gatherer).Header(header)
	if cfg.Username != "" && cfg.Password != "" {
		pusher = pusher.BasicAuth(cfg.Username, cfg.Password)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", cfg.URL, err)
	}
	return nil
}
