package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prestigo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prestigo_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prestigo_reservation_attempts_total",
			Help: "Reservation confirmations by outcome",
		},
		[]string{"outcome"},
	)

	ReservationRollbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prestigo_reservation_rollbacks_total",
			Help: "Compensating availability increments after failed writes",
		},
	)

	ReservationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prestigo_reservations_in_flight",
			Help: "Reservation writes currently in flight",
		},
	)

	ReservationWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prestigo_reservation_write_duration_seconds",
			Help:    "Durable reservation write latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	CapacityGuardTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prestigo_capacity_guard_total",
			Help: "Server-side capacity guard decisions",
		},
		[]string{"result"},
	)

	AvailabilityRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prestigo_availability_refreshes_total",
			Help: "Background availability refreshes by result",
		},
		[]string{"result"},
	)

	SessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prestigo_booking_sessions_open",
			Help: "Booking sessions currently open",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prestigo_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prestigo_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prestigo_events_published_total",
			Help: "Broker events published by topic and status",
		},
		[]string{"topic", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationAttempt(outcome string) {
	ReservationAttemptsTotal.WithLabelValues(outcome).Inc()
}

func RecordRollback() {
	ReservationRollbacksTotal.Inc()
}

func WriteStarted() {
	ReservationsInFlight.Inc()
}

func WriteFinished(result string, seconds float64) {
	ReservationsInFlight.Dec()
	ReservationWriteDuration.WithLabelValues(result).Observe(seconds)
}

func RecordCapacityGuard(result string) {
	CapacityGuardTotal.WithLabelValues(result).Inc()
}

func RecordAvailabilityRefresh(result string) {
	AvailabilityRefreshesTotal.WithLabelValues(result).Inc()
}

func SetSessionsOpen(n int) {
	SessionsOpen.Set(float64(n))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}

func RecordEvent(topic, status string) {
	EventsPublishedTotal.WithLabelValues(topic, status).Inc()
}
