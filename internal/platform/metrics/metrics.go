package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	SubmissionsTotal   prometheus.Counter
	SubmissionsRejects prometheus.Counter
	DecodeFailures     prometheus.Counter
	LoginFailures      prometheus.Counter
}

// New builds a dedicated registry so multiple instances (tests spin up
// several) never trip duplicate registration.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enroll_http_requests_total",
			Help: "Total HTTP requests by status class",
		}, []string{"status"}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "enroll_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}),
		SubmissionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "enroll_submissions_total",
			Help: "Total accepted form submissions",
		}),
		SubmissionsRejects: factory.NewCounter(prometheus.CounterOpts{
			Name: "enroll_submissions_rejected_total",
			Help: "Total form submissions rejected by validation",
		}),
		DecodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "enroll_record_decode_failures_total",
			Help: "Stored records that could not be decrypted or deserialized",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "enroll_login_failures_total",
			Help: "Failed admin login attempts",
		}),
	}
}

func (m *Metrics) RecordRequest(status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(statusClass(status)).Inc()
	m.RequestDuration.Observe(duration.Seconds())
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
