package observability

import "github.com/prometheus/client_golang/prometheus"

// Domain counters exported on /metrics next to the HTTP collectors.
var (
	// OrdersPlaced counts persisted orders by source ("bot" or "miniapp").
	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders persisted.",
		},
		[]string{"source"},
	)

	// NotificationsFailed counts operator notifications that could not be
	// delivered.
	NotificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Total number of operator notifications that failed to send.",
		},
	)

	// EventsFailed counts order events that could not be published.
	EventsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_events_failed_total",
			Help: "Total number of order events that failed to publish.",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersPlaced, NotificationsFailed, EventsFailed)
}
