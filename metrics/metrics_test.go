package metrics_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/sparqlbench/core/mock"
	"github.com/kndndrj/sparqlbench/metrics"
)

func TestCollector_Observe(t *testing.T) {
	r := require.New(t)

	c := metrics.NewCollector()
	samples := mock.NewSamples("nethttp", "ask", 2, 5, 2*time.Millisecond, func(_, it int) bool {
		return it == 4
	})
	for _, s := range samples {
		c.Observe(s)
	}

	expected := `
# HELP sparqlbench_request_failures_total Failed benchmark calls.
# TYPE sparqlbench_request_failures_total counter
sparqlbench_request_failures_total{library="nethttp",operation="ask",status="500"} 2
# HELP sparqlbench_samples_total Measured benchmark calls.
# TYPE sparqlbench_samples_total counter
sparqlbench_samples_total{library="nethttp",operation="ask"} 10
`
	r.NoError(testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected),
		"sparqlbench_request_failures_total", "sparqlbench_samples_total"))

	// one latency series per library and operation
	n, err := testutil.GatherAndCount(c.Registry(), "sparqlbench_request_duration_seconds")
	r.NoError(err)
	r.Equal(1, n)
}

func TestCollector_Handler(t *testing.T) {
	c := metrics.NewCollector()
	for _, s := range mock.NewSamples("resty", "select_simple", 1, 1, time.Millisecond, nil) {
		c.Observe(s)
	}

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sparqlbench_request_duration_seconds_count{library="resty",operation="select_simple"} 1`)
}

func TestCollector_Serve(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		errc <- metrics.NewCollector().Serve(ctx, "127.0.0.1:0", slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
