package metrics

import "github.com/prometheus/client_golang/prometheus"

// WorkflowMetrics exposes counters/histograms for workflow runs.
type WorkflowMetrics struct {
	runsTotal    *prometheus.CounterVec
	runLatency   *prometheus.HistogramVec
	facadeErrors *prometheus.CounterVec
}

func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	m := &WorkflowMetrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "autopilot",
			Subsystem: "workflow",
			Name:      "runs_total",
			Help:      "Total workflow runs by scenario and disposition",
		}, []string{"scenario", "disposition"}),
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "autopilot",
			Subsystem: "workflow",
			Name:      "run_duration_seconds",
			Help:      "Duration of workflow runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scenario"}),
		facadeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "autopilot",
			Subsystem: "workflow",
			Name:      "facade_errors_total",
			Help:      "Runs declined because a system-of-record call failed",
		}, []string{"scenario"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.runsTotal, m.runLatency, m.facadeErrors)
	return m
}

func (m *WorkflowMetrics) ObserveRun(scenario, disposition string, seconds float64) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(scenario, disposition).Inc()
	m.runLatency.WithLabelValues(scenario).Observe(seconds)
}

func (m *WorkflowMetrics) ObserveFacadeError(scenario string) {
	if m == nil {
		return
	}
	m.facadeErrors.WithLabelValues(scenario).Inc()
}
