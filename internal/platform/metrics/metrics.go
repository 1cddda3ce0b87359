// Package metrics exposes the Prometheus registry scraped at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcome labels.
const (
	OutcomeStored         = "stored"
	OutcomeInvalid        = "invalid"
	OutcomeMissingValue   = "missing_value"
	OutcomeWriteFailed    = "write_failed"
	OutcomeDeliveryFailed = "delivery_failed"
	OutcomeBadEnvelope    = "bad_envelope"
	OutcomeError          = "error"
)

type Registry struct {
	reg             *prometheus.Registry
	WebhookOutcomes *prometheus.CounterVec
	WebhookSeconds  prometheus.Histogram
	ArtifactBytes   prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_webhook_outcomes_total",
		Help: "Acknowledged storefront webhooks by processing outcome.",
	}, []string{"outcome"})
	seconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_webhook_duration_seconds",
		Help:    "Time spent handling one storefront webhook.",
		Buckets: prometheus.DefBuckets,
	})
	artifactBytes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_artifact_bytes",
		Help:    "Size of serialized POS orders.",
		Buckets: prometheus.ExponentialBuckets(256, 2, 8),
	})

	r.MustRegister(outcomes, seconds, artifactBytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:             r,
		WebhookOutcomes: outcomes,
		WebhookSeconds:  seconds,
		ArtifactBytes:   artifactBytes,
	}
}

// RecordOutcome is safe on a nil registry.
func (r *Registry) RecordOutcome(outcome string) {
	if r == nil {
		return
	}
	r.WebhookOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveWebhook is safe on a nil registry.
func (r *Registry) ObserveWebhook(seconds float64) {
	if r == nil {
		return
	}
	r.WebhookSeconds.Observe(seconds)
}

// ObserveArtifact is safe on a nil registry.
func (r *Registry) ObserveArtifact(size int) {
	if r == nil {
		return
	}
	r.ArtifactBytes.Observe(float64(size))
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
