package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes used as the "outcome" label.
const (
	outcomeOK          = "ok"
	outcomeSchemaError = "schema_error"
	outcomeBadInput    = "bad_input"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	analyses   *prometheus.CounterVec
	records    prometheus.Counter
	advisories prometheus.Counter
	duration   prometheus.Histogram
}

// NewMetrics registers the analysis collectors plus the Go and process
// collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delay_cli",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Number of schedule analyses by outcome.",
		}, []string{"outcome"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "delay_cli",
			Subsystem: "analysis",
			Name:      "delay_records_total",
			Help:      "Number of longest-path delay records produced.",
		}),
		advisories: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "delay_cli",
			Subsystem: "analysis",
			Name:      "advisories_total",
			Help:      "Number of advisories raised by analyses.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "delay_cli",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Time spent reading and analyzing an upload.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.analyses, m.records, m.advisories, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(outcome string, records, advisories int, elapsed time.Duration) {
	m.analyses.WithLabelValues(outcome).Inc()
	m.records.Add(float64(records))
	m.advisories.Add(float64(advisories))
	m.duration.Observe(elapsed.Seconds())
}
