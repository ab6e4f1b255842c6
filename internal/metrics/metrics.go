package metrics

import (
	"service-fxrates/internal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. They are registered on the
// registerer passed to New so tests can use a private registry.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ProviderRequestsTotal *prometheus.CounterVec

	BasketSkippedTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fx_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"route"},
		),
		ProviderRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_provider_requests_total",
				Help: "Calls to the live rate provider by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		BasketSkippedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_basket_skipped_total",
				Help: "Basket items left out because no rate was found, by live catalogue currency or other",
			},
			[]string{"currency"},
		),
	}
}

// ProviderRequest implements currencyLayer.Observer.
func (m *Metrics) ProviderRequest(endpoint, outcome string) {
	m.ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// otherCurrency labels skips of codes outside the live catalogue, which
// come straight from request bodies.
const otherCurrency = "other"

func (m *Metrics) BasketSkipped(currency string) {
	m.BasketSkippedTotal.WithLabelValues(skippedLabel(currency)).Inc()
}

func skippedLabel(currency string) string {
	if internal.CurrencyName(internal.CurrencyCode(currency)) == "" {
		return otherCurrency
	}
	return currency
}
