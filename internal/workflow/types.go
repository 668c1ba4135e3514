// Package workflow implements the support-request automation engine: one
// handler per request scenario, each verifying the customer's claim against a
// system of record before attempting an automated fix, and escalating to a
// human with a full audit trail when automation is not safe.
package workflow

import "github.com/ctisdesk/autopilot/internal/respond"

// Scenario is the closed set of request categories the engine can run.
// Classification happens upstream; by the time a request reaches the engine it
// already carries one of these tags.
type Scenario string

const (
	ScenarioAccountUnlock      Scenario = "account_unlock"
	ScenarioAccessRequest      Scenario = "access_request"
	ScenarioCourseCompletion   Scenario = "course_completion"
	ScenarioNotificationHealth Scenario = "email_notification_issue"
	ScenarioPrinterIssue       Scenario = "printer_issue"
	ScenarioGeneralSupport     Scenario = "general_support"
)

// ParseScenario maps a wire tag onto the closed scenario set.
func ParseScenario(s string) (Scenario, bool) {
	switch Scenario(s) {
	case ScenarioAccountUnlock, ScenarioAccessRequest, ScenarioCourseCompletion,
		ScenarioNotificationHealth, ScenarioPrinterIssue, ScenarioGeneralSupport:
		return Scenario(s), true
	}
	return "", false
}

// Request is the immutable input to a run: one inbound support message.
// IsThread distinguishes a follow-up in an existing conversation from first
// contact; the printer handler uses it as its two-phase escalation signal.
type Request struct {
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName,omitempty"`
	Subject       string `json:"subject"`
	Content       string `json:"content"`
	IsThread      bool   `json:"isThread"`
}

// VerificationStatus records whether a fact check confirmed the customer's claim.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationFailed   VerificationStatus = "failed"
)

// VerificationResult is the outcome of checking one claim against a system of
// record. Success reports the call itself; Status reports what the call found.
type VerificationResult struct {
	Success bool               `json:"success"`
	Status  VerificationStatus `json:"status"`
	Message string             `json:"message"`
	Details map[string]any     `json:"details,omitempty"`
}

// SystemActionResult is the outcome of one attempted action, recorded in call
// order. Escalation hand-offs are recorded as pseudo-actions so the audit
// trail shows why a human got involved.
type SystemActionResult struct {
	Success bool           `json:"success"`
	Action  string         `json:"action"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Action identifiers recorded in SystemActionResult entries.
const (
	ActionUnlockAccount       = "unlock_account"
	ActionEscalateToIT        = "escalate_to_it"
	ActionProvisionAccess     = "provision_access"
	ActionPendingApproval     = "pending_approval"
	ActionCheckLMSCompletion  = "check_lms_completion"
	ActionMarkCourseComplete  = "mark_course_complete"
	ActionEscalateToProduct   = "escalate_to_product"
	ActionCheckSystemHealth   = "check_system_health"
	ActionCreateOpsAlert      = "create_devops_alert"
	ActionCreateITTicket      = "create_it_ticket"
	ActionSearchKnowledgeBase = "search_knowledge_base"
	ActionCreateTicket        = "create_ticket"
)

// Disposition classifies the terminal state of a run.
type Disposition string

const (
	// DispositionDeclined means the handler took no position and ownership
	// returns to the caller for a different resolution strategy.
	DispositionDeclined Disposition = "declined"
	// DispositionAutoResolved means the request was fully resolved without a human.
	DispositionAutoResolved Disposition = "auto_resolved"
	// DispositionEscalated means a human must act; the customer has been told.
	DispositionEscalated Disposition = "escalated"
)

// Result is the caller-visible record of one run. Build results only through
// declined, autoResolved and escalated so the flag combinations stay legal:
// AIResolved and RequiresHuman are never both set, a resolved or escalated run
// always carries a response, and a declined run carries nothing.
type Result struct {
	Scenario            Scenario             `json:"scenario"`
	Handled             bool                 `json:"handled"`
	AIResolved          bool                 `json:"aiResolved"`
	RequiresHuman       bool                 `json:"requiresHuman"`
	Response            *respond.Template    `json:"response,omitempty"`
	SystemActions       []SystemActionResult `json:"systemActions,omitempty"`
	VerificationResults []VerificationResult `json:"verificationResults,omitempty"`
}

// Disposition derives the sum-type view of the result flags.
func (r Result) Disposition() Disposition {
	switch {
	case !r.Handled:
		return DispositionDeclined
	case r.AIResolved:
		return DispositionAutoResolved
	default:
		return DispositionEscalated
	}
}

// declined reports that the handler does not own this request. No partial
// state leaks out: the caller gets a clean slate for its fallback path.
func declined(scenario Scenario) Result {
	return Result{Scenario: scenario}
}

// autoResolved reports a fully automated resolution with a customer response.
func autoResolved(scenario Scenario, response respond.Template, actions []SystemActionResult, checks []VerificationResult) Result {
	return Result{
		Scenario:            scenario,
		Handled:             true,
		AIResolved:          true,
		Response:            &response,
		SystemActions:       actions,
		VerificationResults: checks,
	}
}

// escalated reports a hand-off to a human, with an acknowledgement for the
// customer describing what was attempted.
func escalated(scenario Scenario, response respond.Template, actions []SystemActionResult, checks []VerificationResult) Result {
	return Result{
		Scenario:            scenario,
		Handled:             true,
		RequiresHuman:       true,
		Response:            &response,
		SystemActions:       actions,
		VerificationResults: checks,
	}
}

// verification builds a VerificationResult from a fact-check envelope.
func verification(callOK, claimConfirmed bool, message string, details map[string]any) VerificationResult {
	status := VerificationFailed
	if claimConfirmed {
		status = VerificationVerified
	}
	return VerificationResult{Success: callOK, Status: status, Message: message, Details: details}
}
