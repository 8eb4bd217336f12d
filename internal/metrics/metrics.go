// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"time"

	apperrors "bankcards/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankcards_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bankcards_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankcards_transfers_total",
		Help: "Card to card transfers, labeled by outcome",
	}, []string{"outcome"})

	transferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankcards_transfer_duration_seconds",
		Help:    "Time spent inside the transfer unit of work, lock waits included",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	cardOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankcards_card_operations_total",
		Help: "Card lifecycle operations, labeled by operation and outcome",
	}, []string{"operation", "outcome"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankcards_cache_lookups_total",
		Help: "Cache lookups, labeled by entity and hit or miss",
	}, []string{"entity", "result"})
)

// Collector records domain level metrics for services.
type Collector interface {
	RecordTransfer(outcome string, duration time.Duration)
	RecordCardOperation(operation, outcome string)
}

type PrometheusCollector struct{}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{}
}

func (PrometheusCollector) RecordTransfer(outcome string, duration time.Duration) {
	transfersTotal.WithLabelValues(outcome).Inc()
	transferDuration.Observe(duration.Seconds())
}

func (PrometheusCollector) RecordCardOperation(operation, outcome string) {
	cardOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) RecordTransfer(string, time.Duration) {}
func (NoopCollector) RecordCardOperation(string, string)   {}

func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordCacheLookup(entity string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(entity, result).Inc()
}

// Outcome turns an operation error into a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if de, ok := apperrors.As(err); ok {
		switch de.Kind {
		case apperrors.KindNotFound:
			return "not_found"
		case apperrors.KindConflict:
			return "conflict"
		case apperrors.KindNotOwner:
			return "not_owner"
		case apperrors.KindStatusNotActive:
			return "not_active"
		case apperrors.KindInsufficientFunds:
			return "insufficient_funds"
		case apperrors.KindLockTimeout:
			return "lock_timeout"
		case apperrors.KindValidation:
			return "invalid"
		case apperrors.KindForbidden, apperrors.KindUnauthorized:
			return "denied"
		}
	}
	return "error"
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
