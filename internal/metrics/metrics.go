package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Результаты resolveCurrent
const (
	ResultShortCircuit = "short_circuit"
	ResultParsed       = "parsed"
	ResultProbeError   = "probe_error"
	ResultParseError   = "parse_error"
)

type Metrics struct {
	Registry *prometheus.Registry

	resolves      *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	notifications *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schedule",
			Name:      "resolves_total",
			Help:      "Schedule resolve calls by projection and outcome.",
		}, []string{"projection", "result"}),
		parseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schedule",
			Name:      "parse_duration_seconds",
			Help:      "Time spent downloading and parsing the schedule workbook.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"projection"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schedule",
			Name:      "notifications_total",
			Help:      "Notifications sent by type.",
		}, []string{"type", "status"}),
	}

	m.Registry.MustRegister(
		m.resolves,
		m.parseDuration,
		m.notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveResolve(projection, result string) {
	m.resolves.WithLabelValues(projection, result).Inc()
}

func (m *Metrics) ObserveParse(projection string, d time.Duration) {
	m.parseDuration.WithLabelValues(projection).Observe(d.Seconds())
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.notifications.WithLabelValues(kind, status).Inc()
}
