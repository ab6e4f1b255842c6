package metrics_test

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-fxrates/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ProviderRequest("live", "ok")
	m.ProviderRequest("live", "ok")
	m.ProviderRequest("historical", "provider_error")
	m.BasketSkipped("XYZ")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("live", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("historical", "provider_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BasketSkippedTotal.WithLabelValues("other")))

	n, err := testutil.GatherAndCount(reg, "fx_provider_requests_total", "fx_basket_skipped_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMetrics_BasketSkippedLabelsAreBounded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	for i := 0; i < 50; i++ {
		m.BasketSkipped(fmt.Sprintf("Q%02d", i))
	}
	m.BasketSkipped("")
	m.BasketSkipped("not-a-currency-code-at-all")
	m.BasketSkipped("JPY")
	m.BasketSkipped("JPY")

	n, err := testutil.GatherAndCount(reg, "fx_basket_skipped_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 52.0, testutil.ToFloat64(m.BasketSkippedTotal.WithLabelValues("other")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BasketSkippedTotal.WithLabelValues("JPY")))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(prometheus.NewRegistry())
		metrics.New(prometheus.NewRegistry())
	})
}
