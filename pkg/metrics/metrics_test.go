package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bookstore-api/pkg/metrics"
)

func TestObserveHTTP_IncrementaContador(t *testing.T) {
	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/sales", "200"))

	metrics.ObserveHTTP("GET", "/api/sales", 200, 15*time.Millisecond)
	metrics.ObserveHTTP("GET", "/api/sales", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/sales", "200"))
	assert.Equal(t, before+2, after)
}

func TestSalesCounters_SonIndependientes(t *testing.T) {
	created := testutil.ToFloat64(metrics.SalesCreatedTotal)
	failed := testutil.ToFloat64(metrics.SalesFailedTotal)

	metrics.SalesFailedTotal.Inc()

	assert.Equal(t, created, testutil.ToFloat64(metrics.SalesCreatedTotal))
	assert.Equal(t, failed+1, testutil.ToFloat64(metrics.SalesFailedTotal))
}
