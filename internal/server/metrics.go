package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the RPC counters exposed at /metrics.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	todoOperations  *prometheus.CounterVec
	todosStored     prometheus.Gauge
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todoapi_request_duration_seconds",
				Help:    "Duration of RPC requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todoapi_requests_total",
				Help: "Total number of RPC requests",
			},
			[]string{"procedure", "status"},
		),
		todoOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todoapi_todo_operations_total",
				Help: "Total number of todo operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		todosStored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "todoapi_todos_listed",
				Help: "Number of todos returned by the last list call",
			},
		),
	}
	registry.MustRegister(m.requestDuration, m.requestTotal, m.todoOperations, m.todosStored)
	return m
}

func (m *Metrics) RecordRequest(procedure, status string, d time.Duration) {
	m.requestDuration.WithLabelValues(procedure, status).Observe(d.Seconds())
	m.requestTotal.WithLabelValues(procedure, status).Inc()
}

func (m *Metrics) RecordOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.todoOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) SetListed(n int) {
	m.todosStored.Set(float64(n))
}
