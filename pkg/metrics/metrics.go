package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingOutcomesTotal     *prometheus.CounterVec
	NotificationFailures     *prometheus.CounterVec
	GridErrorsTotal          *prometheus.CounterVec
	PendingCreatedTotal      prometheus.Counter
	RateLimitedRequestsTotal *prometheus.CounterVec
}

// New регистрирует метрики в переданном реестре
// serviceName попадает в константную метку service
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),

		BookingOutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_outcomes_total",
			Help:        "Booking workflow outcomes by operation and result",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),

		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_notification_failures_total",
			Help:        "Confirmation code deliveries that failed",
			ConstLabels: labels,
		}, []string{"notifier"}),

		GridErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "occupancy_grid_errors_total",
			Help:        "Occupancy store failures by operation",
			ConstLabels: labels,
		}, []string{"operation"}),

		PendingCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "pending_confirmations_created_total",
			Help:        "Pending confirmations created",
			ConstLabels: labels,
		}),

		RateLimitedRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_rate_limited_requests_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: labels,
		}, []string{"route"}),
	}
}

// BookingOutcome увеличивает счетчик исхода операции
// Безопасен для nil-получателя, чтобы use case работали без метрик
func (m *Metrics) BookingOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// NotificationFailed фиксирует неудачную доставку кода
func (m *Metrics) NotificationFailed(notifier string) {
	if m == nil {
		return
	}
	m.NotificationFailures.WithLabelValues(notifier).Inc()
}

// GridError фиксирует отказ хранилища сетки
func (m *Metrics) GridError(operation string) {
	if m == nil {
		return
	}
	m.GridErrorsTotal.WithLabelValues(operation).Inc()
}

// PendingCreated фиксирует создание ожидающего подтверждения
func (m *Metrics) PendingCreated() {
	if m == nil {
		return
	}
	m.PendingCreatedTotal.Inc()
}
