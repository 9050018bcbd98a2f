package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Outcome labels for proxied provider calls.
const (
	OutcomeSuccess        = "success"
	OutcomeBadRequest     = "bad_request"
	OutcomeUnauthorized   = "unauthorized"
	OutcomeProviderError  = "provider_error"
	OutcomeTransportError = "transport_error"
)

type Metrics struct {
	registry *prometheus.Registry

	TokenExchanges   *prometheus.CounterVec
	ProfileFetches   *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
}

// New registers the proxy metrics on a private registry so that several
// instances can coexist in tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TokenExchanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_viewer_token_exchanges_total",
			Help: "Authorization code exchanges handled by the backend, by outcome",
		}, []string{"outcome"}),
		ProfileFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_viewer_profile_fetches_total",
			Help: "Profile fetches proxied to the identity provider, by outcome",
		}, []string{"outcome"}),
		ProviderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profile_viewer_provider_request_duration_seconds",
			Help:    "Latency of outbound identity provider calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) RecordTokenExchange(outcome string) {
	m.TokenExchanges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordProfileFetch(outcome string) {
	m.ProfileFetches.WithLabelValues(outcome).Inc()
}

// ObserveProvider records the latency of an outbound provider call.
func (m *Metrics) ObserveProvider(endpoint string, seconds float64) {
	m.ProviderDuration.WithLabelValues(endpoint).Observe(seconds)
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)
