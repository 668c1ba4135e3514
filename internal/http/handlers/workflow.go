// Package handlers implements the HTTP endpoints of the automation API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ctisdesk/autopilot/internal/audit"
	"github.com/ctisdesk/autopilot/internal/notify"
	"github.com/ctisdesk/autopilot/internal/workflow"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

const maxRequestBody = 1 << 20

// WorkflowHandler serves workflow runs over HTTP. Audit and delivery are best
// effort: the run's result is returned to the caller even when recording or
// sending the customer email fails.
type WorkflowHandler struct {
	runner   workflow.Runner
	store    *audit.Store
	delivery *notify.Delivery
	logger   *logging.Logger
}

// NewWorkflowHandler creates the workflow endpoint handler. store may be nil
// when no database is configured.
func NewWorkflowHandler(runner workflow.Runner, store *audit.Store, delivery *notify.Delivery, logger *logging.Logger) *WorkflowHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if delivery == nil {
		delivery = notify.NewDelivery(nil, logger)
	}
	return &WorkflowHandler{runner: runner, store: store, delivery: delivery, logger: logger}
}

type runRequest struct {
	Scenario      string `json:"scenario"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	Subject       string `json:"subject"`
	Content       string `json:"content"`
	IsThread      bool   `json:"isThread"`
}

// Run handles POST /workflows/run.
func (h *WorkflowHandler) Run(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := validateRunRequest(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	scenario, ok := workflow.ParseScenario(body.Scenario)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown scenario: "+body.Scenario)
		return
	}

	req := workflow.Request{
		CustomerEmail: body.CustomerEmail,
		CustomerName:  body.CustomerName,
		Subject:       body.Subject,
		Content:       body.Content,
		IsThread:      body.IsThread,
	}

	result := h.runner.Run(r.Context(), scenario, req)

	if h.store != nil {
		if _, err := h.store.Record(r.Context(), req, result); err != nil {
			h.logger.Error("failed to record run", "error", err, "scenario", scenario)
		}
	}
	if result.Response != nil {
		if err := h.delivery.DeliverResponse(r.Context(), req.CustomerEmail, req.CustomerName, *result.Response); err != nil {
			h.logger.Error("failed to deliver response", "error", err, "scenario", scenario)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// RecentRuns handles GET /workflows/runs.
func (h *WorkflowHandler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotImplemented, "run history is not configured")
		return
	}

	var (
		records []*audit.RunRecord
		err     error
	)
	if tag := r.URL.Query().Get("scenario"); tag != "" {
		scenario, ok := workflow.ParseScenario(tag)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown scenario: "+tag)
			return
		}
		records, err = h.store.RecentByScenario(r.Context(), scenario, 50)
	} else {
		records, err = h.store.Recent(r.Context(), 50)
	}
	if err != nil {
		h.logger.Error("failed to load run history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load run history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": records, "count": len(records)})
}

// Health handles GET /health.
func (h *WorkflowHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validateRunRequest(body runRequest) error {
	switch {
	case body.Scenario == "":
		return errors.New("scenario is required")
	case body.CustomerEmail == "":
		return errors.New("customerEmail is required")
	case body.Subject == "" && body.Content == "":
		return errors.New("subject or content is required")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
