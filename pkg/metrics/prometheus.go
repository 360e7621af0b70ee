package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	ingestOutcomes   *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerDegraded *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	barsStored       *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ingestOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_ingest_outcomes_total",
				Help: "Ingestion pipeline outcomes per status",
			},
			[]string{"status"},
		),
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_provider_requests_total",
				Help: "Requests issued to analysis providers",
			},
			[]string{"provider"},
		),
		providerDegraded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_provider_degraded_total",
				Help: "Provider responses served from fallback, by failure class",
			},
			[]string{"provider", "class"},
		),
		providerLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinpulse_provider_duration_seconds",
				Help:    "Duration of provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		barsStored: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coinpulse_bars_stored",
				Help: "Bars currently stored per symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordIngestOutcome records one per-symbol pipeline outcome.
func (r *Recorder) RecordIngestOutcome(status string) {
	r.ingestOutcomes.WithLabelValues(status).Inc()
}

// RecordProviderRequest records a provider call attempt.
func (r *Recorder) RecordProviderRequest(provider string) {
	r.providerRequests.WithLabelValues(provider).Inc()
}

// RecordProviderDegraded records a fallback response with its failure class.
func (r *Recorder) RecordProviderDegraded(provider, class string) {
	r.providerDegraded.WithLabelValues(provider, class).Inc()
}

// RecordProviderLatency records provider call latency in seconds.
func (r *Recorder) RecordProviderLatency(provider string, seconds float64) {
	r.providerLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordBarsStored records the stored series length for a symbol.
func (r *Recorder) RecordBarsStored(symbol string, count int) {
	r.barsStored.WithLabelValues(symbol).Set(float64(count))
}
