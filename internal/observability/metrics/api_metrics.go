package metrics

import "github.com/prometheus/client_golang/prometheus"

// Lead capture outcomes.
const (
	LeadOutcomeCaptured     = "captured"
	LeadOutcomeInvalid      = "invalid"
	LeadOutcomeStorageError = "storage_error"
)

// APIMetrics exposes counters/histograms for the HTTP API and its generators.
type APIMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	leadsTotal       *prometheus.CounterVec
	ideasGenerated   prometheus.Counter
	scriptsGenerated prometheus.Counter
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ytre",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route pattern",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ytre",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ytre",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome",
		}, []string{"outcome"}),
		ideasGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ytre",
			Subsystem: "ideas",
			Name:      "generated_total",
			Help:      "Video ideas generated",
		}),
		scriptsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ytre",
			Subsystem: "scripts",
			Name:      "generated_total",
			Help:      "Script outlines generated",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency, m.leadsTotal, m.ideasGenerated, m.scriptsGenerated)
	return m
}

func (m *APIMetrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, method, status).Inc()
	m.requestLatency.WithLabelValues(route, method).Observe(seconds)
}

func (m *APIMetrics) ObserveLead(outcome string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(outcome).Inc()
}

func (m *APIMetrics) ObserveIdeas(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.ideasGenerated.Add(float64(count))
}

func (m *APIMetrics) ObserveScript() {
	if m == nil {
		return
	}
	m.scriptsGenerated.Inc()
}
