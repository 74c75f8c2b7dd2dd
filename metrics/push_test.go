package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPushDisabled(t *testing.T) {
	require.NoError(t, Push(context.Background(), DefaultPushConfig(), prometheus.NewRegistry()))
}

func TestPush(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Namespace: Namespace, Name: "pushed"})
	reg.MustRegister(counter)
	counter.Add(2)

	var (
		path string
		body []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := DefaultPushConfig()
	cfg.URL = srv.URL
	require.NoError(t, Push(context.Background(), cfg, reg))
	require.Equal(t, "/metrics/job/parachain", path)
	require.NotEmpty(t, body)
}

func TestPushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultPushConfig()
	cfg.URL = srv.URL
	require.Error(t, Push(context.Background(), cfg, prometheus.NewRegistry()))
}
