// Package metrics provides the centralized Prometheus metrics registry for
// the simulation engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "simulations_total",
		Help:      "Total number of full-game simulations run",
	})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "predictions_total",
		Help:      "Total number of predictions produced",
	})
	HalfInningTruncationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "half_inning_truncations_total",
		Help:      "Half-innings cut off by the plate appearance cap",
	})
	ExtraInningTruncationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "extra_inning_truncations_total",
		Help:      "Games cut off by the extra-innings cap",
	})
	ClampedDistributionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "clamped_distributions_total",
		Help:      "Plate appearances whose outcome distribution had negative probabilities clamped",
	})
	BacktestGamesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "backtest_games_total",
		Help:      "Historical games processed by the backtest harness",
	})
	BacktestGamesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "backtest_games_skipped_total",
		Help:      "Historical games skipped as malformed or failed",
	})
	GameLogSyncTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runline",
		Name:      "gamelog_sync_total",
		Help:      "Game-log records fetched from the external source",
	})
)

// Gauge metrics
var (
	LastPredictedTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "runline",
		Name:      "last_predicted_total",
		Help:      "Most recent predicted run total",
	})
	LastOverProbability = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "runline",
		Name:      "last_over_probability",
		Help:      "Most recent over probability",
	})
	BacktestAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "runline",
		Name:      "backtest_accuracy",
		Help:      "Accuracy of the most recent backtest run",
	})
)

// Registry returns the shared registry, initializing it on first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			SimulationsTotal,
			PredictionsTotal,
			HalfInningTruncationsTotal,
			ExtraInningTruncationsTotal,
			ClampedDistributionsTotal,
			BacktestGamesTotal,
			BacktestGamesSkippedTotal,
			GameLogSyncTotal,
			LastPredictedTotal,
			LastOverProbability,
			BacktestAccuracy,
		)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
