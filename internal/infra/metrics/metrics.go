// Package metrics exposes Prometheus instrumentation for the storefront.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the counters incremented by the delivery layer.
type Metrics struct {
	RegistrationsTotal prometheus.Counter
	LoginsTotal        *prometheus.CounterVec
	OrdersPlacedTotal  prometheus.Counter
	CartUpdatesTotal   *prometheus.CounterVec
}

// New registers the storefront counters on the default registry.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_registrations_total",
			Help: "Number of successful user registrations.",
		}),
		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_logins_total",
			Help: "Number of login attempts by result.",
		}, []string{"result"}),
		OrdersPlacedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Number of orders placed.",
		}),
		CartUpdatesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_updates_total",
			Help: "Number of cart mutations by operation.",
		}, []string{"operation"}),
	}
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
