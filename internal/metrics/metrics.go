package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentshare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentshare",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted into WAITING.",
		},
	)

	bookingsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentshare",
			Name:      "bookings_resolved_total",
			Help:      "Booking approvals by outcome.",
		},
		[]string{"status"},
	)

	commentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentshare",
			Name:      "comments_created_total",
			Help:      "Comments passed the eligibility gate.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingsResolved, commentsCreated)
	})
}

// IncHTTP increments the counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingResolved(status string) {
	bookingsResolved.WithLabelValues(status).Inc()
}

func IncCommentCreated() {
	commentsCreated.Inc()
}
