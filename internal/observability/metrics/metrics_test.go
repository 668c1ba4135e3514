package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	m.ObserveRun("account_unlock", "auto_resolved", 0.2)
	m.ObserveRun("account_unlock", "auto_resolved", 0.1)
	m.ObserveRun("general_support", "escalated", 0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("account_unlock", "auto_resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("general_support", "escalated")))
}

func TestObserveFacadeError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	m.ObserveFacadeError("printer_issue")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.facadeErrors.WithLabelValues("printer_issue")))
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *WorkflowMetrics
	require.NotPanics(t, func() {
		m.ObserveRun("account_unlock", "declined", 0)
		m.ObserveFacadeError("account_unlock")
	})
}
