// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travelsplit"

// Collector owns a private registry so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	RPCRequests         *prometheus.CounterVec
	RPCDuration         *prometheus.HistogramVec
	BalanceComputations *prometheus.CounterVec
	ExpensesConsidered  prometheus.Histogram
}

// NewCollector creates and registers all collectors.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		RPCRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total number of RPC calls by procedure and result code",
			},
			[]string{"procedure", "code"},
		),
		RPCDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "RPC handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		BalanceComputations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_computations_total",
				Help:      "Total number of balance computations by ledger policy",
			},
			[]string{"policy"},
		),
		ExpensesConsidered: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "balance_expenses_considered",
				Help:      "Number of expenses that took part in a balance computation",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	registry.MustRegister(
		c.RPCRequests,
		c.RPCDuration,
		c.BalanceComputations,
		c.ExpensesConsidered,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveRPC records one finished call.
func (c *Collector) ObserveRPC(procedure, code string, d time.Duration) {
	c.RPCRequests.WithLabelValues(procedure, code).Inc()
	c.RPCDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveBalance records one balance computation.
func (c *Collector) ObserveBalance(policy string, expenses int) {
	c.BalanceComputations.WithLabelValues(policy).Inc()
	c.ExpensesConsidered.Observe(float64(expenses))
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
