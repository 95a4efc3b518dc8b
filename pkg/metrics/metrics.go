// Package metrics expone contadores e histogramas Prometheus de la API.
// Se registran una sola vez en el Registry por defecto (promauto) y se publican en /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

var (
	// HTTPRequestsTotal peticiones HTTP por método, ruta y código.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration latencia HTTP por método y ruta.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SalesCreatedTotal ventas confirmadas (commit exitoso).
	SalesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_created_total",
		Help:      "Ventas creadas con commit exitoso",
	})

	// SalesFailedTotal ventas revertidas por error de persistencia.
	SalesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_failed_total",
		Help:      "Ventas cuya transacción fue revertida",
	})

	// SaleCreationDuration duración de la transacción de venta.
	SaleCreationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sale_creation_duration_seconds",
		Help:      "Duración de la creación de ventas (begin..commit)",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	// SaleLineItems cantidad de líneas por venta.
	SaleLineItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sale_line_items",
		Help:      "Líneas de detalle por venta",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
	})
)

// ObserveHTTP registra una petición terminada.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
