package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics counts the order engine's externally visible outcomes.
type OrderMetrics struct {
	OrdersCreated     prometheus.Counter
	PaymentsConfirmed prometheus.Counter
	StockConflicts    prometheus.Counter
	Refunds           prometheus.Counter
	RequestLatencyMS  *prometheus.HistogramVec
}

func New() *OrderMetrics {
	m := &OrderMetrics{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopverse",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders created.",
		}),
		PaymentsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopverse",
			Subsystem: "orders",
			Name:      "payments_confirmed_total",
			Help:      "Total number of payments confirmed as paid.",
		}),
		StockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopverse",
			Subsystem: "orders",
			Name:      "stock_conflicts_total",
			Help:      "Payment confirmations rejected for insufficient stock.",
		}),
		Refunds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopverse",
			Subsystem: "orders",
			Name:      "refunds_total",
			Help:      "Total number of refunds processed.",
		}),
		RequestLatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shopverse",
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"handler"}),
	}

	prometheus.MustRegister(
		m.OrdersCreated,
		m.PaymentsConfirmed,
		m.StockConflicts,
		m.Refunds,
		m.RequestLatencyMS,
	)
	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}
