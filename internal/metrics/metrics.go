package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dockside",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dockside",
			Name:      "bookings_created_total",
			Help:      "Successfully created bookings.",
		},
	)

	notificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dockside",
			Name:      "notification_failures_total",
			Help:      "Notification deliveries that exhausted retries, by sink.",
		},
		[]string{"sink"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, notificationFailures)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookings counts a created booking.
func IncBookings() {
	bookingsCreated.Inc()
}

// IncNotificationFailure counts a delivery given up on after retries.
func IncNotificationFailure(sink string) {
	notificationFailures.WithLabelValues(sink).Inc()
}
