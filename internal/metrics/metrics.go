// Package metrics prometheus-метрики сервиса оплаты.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment_form"

// Исходы обработки запроса на оплату.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeInternalError  = "internal_error"
)

// Metrics счётчики оплат и длительность запросов к провайдеру.
type Metrics struct {
	payments         *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		payments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Processed payment requests by outcome.",
		}, []string{"outcome"}),
		providerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of requests to the payments provider.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "code"}),
	}
}

// PaymentProcessed учитывает один обработанный запрос.
func (m *Metrics) PaymentProcessed(outcome string) {
	m.payments.WithLabelValues(outcome).Inc()
}

// ObserveProviderRequest реализует paymentprovider.Observer.
// statusCode 0 означает, что ответа не было (ошибка транспорта).
func (m *Metrics) ObserveProviderRequest(operation string, statusCode int, duration time.Duration) {
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.providerDuration.WithLabelValues(operation, code).Observe(duration.Seconds())
}
