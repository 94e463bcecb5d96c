package api

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	defaultMetricsOnce     sync.Once
	defaultMetricsInstance *metrics
)

func defaultMetrics() *metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetricsInstance = newMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetricsInstance
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stocksage",
				Subsystem: "api_client",
				Name:      "requests_total",
				Help:      "Total calls made to the StockSage backend",
			},
			[]string{"method", "route", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stocksage",
				Subsystem: "api_client",
				Name:      "request_duration_seconds",
				Help:      "Duration of calls made to the StockSage backend",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *metrics) observe(method, route string, status int, err error, d time.Duration) {
	m.requests.WithLabelValues(method, route, outcome(status, err)).Inc()
	if status != 0 {
		m.duration.WithLabelValues(method, route).Observe(d.Seconds())
	}
}

// outcome buckets a call into a low-cardinality label.
func outcome(status int, err error) string {
	switch {
	case status != 0:
		return strconv.Itoa(status)
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid"
	case err != nil:
		return "transport"
	default:
		return "ok"
	}
}
