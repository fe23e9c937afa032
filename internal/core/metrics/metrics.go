// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shipment_sync"

var (
	// Registry is the private registry served by Handler.
	Registry = prometheus.NewRegistry()

	// Outcomes counts orchestrator outcomes by inbound route and terminal state.
	Outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_outcomes_total",
		Help:      "Shipment events processed, by route and terminal state.",
	}, []string{"route", "state"})

	// FulfillmentWrites counts fulfillment create attempts by result.
	FulfillmentWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fulfillment_writes_total",
		Help:      "Fulfillment create mutations issued, by result.",
	}, []string{"result"})

	// UpstreamDuration observes outbound HTTP latency by upstream host and status code.
	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Outbound HTTP request latency.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"host", "code"})

	// BackfillItems counts backfill items by result.
	BackfillItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backfill_items_total",
		Help:      "Backfill items processed, by result.",
	}, []string{"result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		Outcomes,
		FulfillmentWrites,
		UpstreamDuration,
		BackfillItems,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
