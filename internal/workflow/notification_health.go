package workflow

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// notificationSubsystem is the health-check target for email delivery issues.
const notificationSubsystem = "email-notifications"

// NotificationHealthHandler triages "I'm not getting emails" reports. A
// healthy subsystem means the problem is presumed client-side and the customer
// gets self-service steps; a degradation files an ops alert and escalates.
type NotificationHealthHandler struct {
	operations Operations
	logger     *logging.Logger
}

// NewNotificationHealthHandler creates the email-notification scenario handler.
func NewNotificationHealthHandler(operations Operations, logger *logging.Logger) *NotificationHealthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &NotificationHealthHandler{operations: operations, logger: logger}
}

// Scenario reports which request category this handler owns.
func (h *NotificationHealthHandler) Scenario() Scenario { return ScenarioNotificationHealth }

// Handle runs health-check → alert-and-escalate for one request.
func (h *NotificationHealthHandler) Handle(ctx context.Context, req Request) (Result, error) {
	var (
		actions []SystemActionResult
		checks  []VerificationResult
	)

	h.logger.Info("checking notification subsystem health", "scenario", ScenarioNotificationHealth,
		"email", req.CustomerEmail, "subsystem", notificationSubsystem)

	health, err := h.operations.CheckSystemHealth(ctx, notificationSubsystem)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: check system health: %w", err)
	}
	operational := health.Status == HealthStatusOperational
	checks = append(checks, verification(health.Success, operational, health.Message, health.Details))
	actions = append(actions, SystemActionResult{
		Success: health.Success,
		Action:  ActionCheckSystemHealth,
		Message: health.Message,
		Details: health.Details,
	})

	if operational {
		h.logger.Info("subsystem healthy, sending self-service steps", "email", req.CustomerEmail)
		return autoResolved(ScenarioNotificationHealth,
			respond.NotificationHealth(req.CustomerName, respond.HealthResolved),
			actions, checks), nil
	}

	h.logger.Warn("subsystem degraded, alerting operations", "status", health.Status)
	alert, err := h.operations.CreateOpsAlert(ctx,
		"Email Notification Service Degraded",
		fmt.Sprintf("Customer reported email notification issue. System health check shows: %s", health.Message),
		SeverityHigh,
	)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: create ops alert: %w", err)
	}
	actions = append(actions, SystemActionResult{
		Success: alert.Success,
		Action:  ActionCreateOpsAlert,
		Message: alert.Message,
		Details: alert.Details,
	})

	return escalated(ScenarioNotificationHealth,
		respond.NotificationHealth(req.CustomerName, respond.HealthEscalated),
		actions, checks), nil
}
