// Package metrics exports benchmark samples as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kndndrj/sparqlbench/core"
)

const namespace = "sparqlbench"

var _ core.Observer = (*Collector)(nil)

// Collector records every measured sample.
type Collector struct {
	registry *prometheus.Registry

	latency  *prometheus.HistogramVec
	failures *prometheus.CounterVec
	samples  *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of successful benchmark calls.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"library", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_failures_total",
			Help:      "Failed benchmark calls.",
		}, []string{"library", "operation", "status"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Measured benchmark calls.",
		}, []string{"library", "operation"}),
	}

	c.registry.MustRegister(c.latency, c.failures, c.samples)

	return c
}

func (c *Collector) Observe(s core.Sample) {
	c.samples.WithLabelValues(s.Library, s.Operation).Inc()

	if !s.Success {
		c.failures.WithLabelValues(s.Library, s.Operation, strconv.Itoa(s.Status)).Inc()
		return
	}
	c.latency.WithLabelValues(s.Library, s.Operation).Observe(s.Elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	logger.Info("serving metrics", slog.String("addr", l.Addr().String()))

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(l)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("srv.Serve: %w", err)
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	}
}
