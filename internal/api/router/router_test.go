package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctisdesk/autopilot/internal/http/handlers"
	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/internal/workflow"
)

type staticRunner struct{ result workflow.Result }

func (s staticRunner) Run(ctx context.Context, scenario workflow.Scenario, req workflow.Request) workflow.Result {
	return s.result
}

func newTestRouter() http.Handler {
	tpl := respond.PrinterGuide("")
	runner := staticRunner{result: workflow.Result{
		Scenario:   workflow.ScenarioPrinterIssue,
		Handled:    true,
		AIResolved: true,
		Response:   &tpl,
	}}
	return New(&Config{
		WorkflowHandler: handlers.NewWorkflowHandler(runner, nil, nil, nil),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RunWorkflow(t *testing.T) {
	body := []byte(`{"scenario":"printer_issue","customerEmail":"a@b.com","subject":"printer broken"}`)
	req := httptest.NewRequest(http.MethodPost, "/workflows/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"aiResolved":true`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
