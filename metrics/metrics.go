// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instrumentation for sampling runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/sampling"
)

const (
	namespace = "txpath"
	subsystem = "sampling"
)

// Collector records trial events. It implements sampling.Observer.
type Collector struct {
	started  prometheus.Counter
	finished prometheus.Counter
	duration prometheus.Histogram
	paths    *prometheus.CounterVec
	pairs    *prometheus.CounterVec
	clamped  *prometheus.CounterVec
	scored   prometheus.Gauge
}

var _ sampling.Observer = (*Collector)(nil)

// NewCollector registers the sampling metrics on reg. Registering twice on
// the same registry panics, as with any promauto collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		started: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "trials_started_total",
			Help:      "Sampling trials started",
		}),
		finished: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "trials_finished_total",
			Help:      "Sampling trials completed",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "trial_duration_seconds",
			Help:      "Wall time of one sampling trial",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		paths: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "paths_total",
			Help:      "Paths materialized for reuse scoring",
		}, []string{"label"}),
		pairs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pairs_total",
			Help:      "Source/target pairs with at least one counted path",
		}, []string{"label"}),
		clamped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "clamped_samples_total",
			Help:      "Trials whose sample request exceeded the population",
		}, []string{"label"}),
		scored: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "scored_nodes",
			Help:      "Nodes scored in the most recent trial",
		}),
	}
}

// TrialStarted implements sampling.Observer.
func (c *Collector) TrialStarted(int) {
	c.started.Inc()
}

// TrialFinished implements sampling.Observer.
func (c *Collector) TrialFinished(ts sampling.TrialStats) {
	c.finished.Inc()
	c.duration.Observe(ts.Duration.Seconds())
	c.scored.Set(float64(ts.Scored))
	c.side(core.LabelLicit, ts.Licit)
	c.side(core.LabelIllicit, ts.Illicit)
}

func (c *Collector) side(l core.Label, s sampling.SideStats) {
	name := l.String()
	c.paths.WithLabelValues(name).Add(float64(s.Paths))
	c.pairs.WithLabelValues(name).Add(float64(s.Pairs))
	if s.Clamped {
		c.clamped.WithLabelValues(name).Inc()
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
