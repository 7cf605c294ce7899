package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "treeminer"

// Metrics wraps a dedicated Prometheus registry with the gauges and counters
// a mining run publishes. Each instance owns an independent registry, so
// constructing more than one in a process (e.g. across tests) never panics
// on duplicate collector registration.
type Metrics struct {
	registry       *prometheus.Registry
	patternsTotal  prometheus.Counter
	maxPatternSize prometheus.Gauge
	miningDuration prometheus.Histogram
}

// NewMetrics constructs a Metrics instance with its collectors registered.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		patternsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "patterns_total",
			Help:      "Total number of frequent patterns emitted by the most recent mining run.",
		}),
		maxPatternSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "max_pattern_size",
			Help:      "Size of the largest frequent pattern found by the most recent mining run.",
		}),
		miningDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "mining_duration_seconds",
			Help:      "Wall-clock duration of a mining run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(m.patternsTotal, m.maxPatternSize, m.miningDuration)

	return m
}

// Observe records the outcome of one completed mining run.
func (m *Metrics) Observe(patternCount, maxPatternSize int, elapsed time.Duration) {
	m.patternsTotal.Add(float64(patternCount))
	m.maxPatternSize.Set(float64(maxPatternSize))
	m.miningDuration.Observe(elapsed.Seconds())
}

// Serve starts an HTTP server at addr exposing /metrics and returns a
// shutdown function the caller must invoke (typically via defer) before
// exiting.
func (m *Metrics) Serve(addr string) (shutdown func(), err error) {
	var lc net.ListenConfig

	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("observability: listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		serveErr := srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Warn("metrics server stopped", "error", serveErr)
		}
	}()

	shutdown = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			slog.Warn("metrics server shutdown", "error", shutdownErr)
		}
	}

	return shutdown, nil
}
