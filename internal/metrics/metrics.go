// Package metrics exposes Prometheus collectors for the reconciler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// Metrics holds all reconciler collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	MarketsTotal   *prometheus.CounterVec
	ResolvedTotal  *prometheus.CounterVec
	ProviderHits   *prometheus.CounterVec
	LeagueFailures *prometheus.CounterVec
	CacheHitsTotal prometheus.Counter
	CacheSize      prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportsettle_runs_total",
				Help: "Reconcile runs by terminal status",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sportsettle_run_duration_seconds",
				Help:    "Wall-clock duration of a reconcile run",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
		),
		MarketsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportsettle_markets_total",
				Help: "Markets considered, by per-market result",
			},
			[]string{"result"},
		),
		ResolvedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportsettle_resolutions_total",
				Help: "Successful resolutions by outcome",
			},
			[]string{"outcome"},
		),
		ProviderHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportsettle_provider_hits_total",
				Help: "Score lookups answered, by source",
			},
			[]string{"source"},
		),
		LeagueFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportsettle_league_failures_total",
				Help: "League-level provider call failures",
			},
			[]string{"provider"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sportsettle_cache_hits_total",
				Help: "Score lookups answered from the cache",
			},
		),
		CacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sportsettle_cache_entries",
				Help: "Live score cache entries at the end of the last run",
			},
		),
	}

	registry.MustRegister(
		m.RunsTotal, m.RunDuration, m.MarketsTotal, m.ResolvedTotal,
		m.ProviderHits, m.LeagueFailures, m.CacheHitsTotal, m.CacheSize,
	)
	return m
}

// ObserveRun records a completed run summary.
func (m *Metrics) ObserveRun(s domain.RunSummary) {
	m.RunsTotal.WithLabelValues("ok").Inc()
	m.RunDuration.Observe(s.Duration.Seconds())

	m.MarketsTotal.WithLabelValues("resolved").Add(float64(s.Resolved))
	m.MarketsTotal.WithLabelValues("pending").Add(float64(s.Pending))
	m.MarketsTotal.WithLabelValues("skipped").Add(float64(s.Skipped))
	m.MarketsTotal.WithLabelValues("failed").Add(float64(s.Failed))

	m.ResolvedTotal.WithLabelValues("YES").Add(float64(s.HomeWins))
	m.ResolvedTotal.WithLabelValues("NO").Add(float64(s.AwayWins))
	m.ResolvedTotal.WithLabelValues("DRAW").Add(float64(s.Draws))

	m.ProviderHits.WithLabelValues("primary").Add(float64(s.PrimaryHits))
	m.ProviderHits.WithLabelValues("fallback").Add(float64(s.FallbackHits))

	m.LeagueFailures.WithLabelValues("primary").Add(float64(s.PrimaryLeagueErrors))
	m.LeagueFailures.WithLabelValues("fallback").Add(float64(s.FallbackLeagueErrors))

	m.CacheHitsTotal.Add(float64(s.CacheHits))
	m.CacheSize.Set(float64(s.CacheSize))
}

// ObserveRunError records a run that failed before producing a summary.
func (m *Metrics) ObserveRunError() {
	m.RunsTotal.WithLabelValues("error").Inc()
}

// Handler returns the HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
