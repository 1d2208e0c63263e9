package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "drone_booking"

// Результаты отправки бронирования
const (
	SubmissionSucceeded = "succeeded"
	SubmissionRejected  = "rejected"
	SubmissionFailed    = "failed"
)

// Исходы проверки доступности
const (
	AvailabilityKnown    = "known"
	AvailabilityUnknown  = "unknown"
	AvailabilityCacheHit = "cache_hit"
)

// Metrics коллектор метрик сервиса.
// Все методы безопасны для nil-получателя (метрики выключены).
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	submissions         *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	availabilityLookups *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status_code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency distribution",
				Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				ConstLabels: constLabels,
			},
			[]string{"method", "route"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "booking_submissions_total",
				Help:        "Booking submissions by result",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "booking_notifications_total",
				Help:        "Booking notifications by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		availabilityLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "availability_lookups_total",
				Help:        "Slot availability lookups by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.submissions,
		m.notifications,
		m.availabilityLookups,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveSubmission учитывает попытку отправки бронирования
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

// ObserveNotification учитывает результат отправки уведомления
func (m *Metrics) ObserveNotification(delivered bool) {
	if m == nil {
		return
	}
	outcome := "delivered"
	if !delivered {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

// ObserveAvailability учитывает исход проверки доступности слотов
func (m *Metrics) ObserveAvailability(outcome string) {
	if m == nil {
		return
	}
	m.availabilityLookups.WithLabelValues(outcome).Inc()
}
