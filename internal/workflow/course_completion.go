package workflow

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// CourseCompletionHandler marks a course complete only when the learning
// system itself confirms completion. A record that disagrees with the
// customer's claim is never overridden on say-so; it goes to the product team.
type CourseCompletionHandler struct {
	learning Learning
	logger   *logging.Logger
}

// NewCourseCompletionHandler creates the course-completion scenario handler.
func NewCourseCompletionHandler(learning Learning, logger *logging.Logger) *CourseCompletionHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &CourseCompletionHandler{learning: learning, logger: logger}
}

// Scenario reports which request category this handler owns.
func (h *CourseCompletionHandler) Scenario() Scenario { return ScenarioCourseCompletion }

// Handle runs verify-completion → mark-complete → escalate for one request.
func (h *CourseCompletionHandler) Handle(ctx context.Context, req Request) (Result, error) {
	var (
		actions []SystemActionResult
		checks  []VerificationResult
	)

	courseName := extractCourseName(req.Subject, req.Content)
	h.logger.Info("checking course completion", "scenario", ScenarioCourseCompletion,
		"email", req.CustomerEmail, "course", courseName)

	status, err := h.learning.CheckCourseCompletion(ctx, req.CustomerEmail, courseName)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: check course completion: %w", err)
	}
	checks = append(checks, verification(status.Success, status.IsComplete, status.Message, status.Details))
	actions = append(actions, SystemActionResult{
		Success: status.Success,
		Action:  ActionCheckLMSCompletion,
		Message: status.Message,
		Details: status.Details,
	})

	if !status.IsComplete {
		h.logger.Warn("course not complete in learning system, escalating to product team",
			"email", req.CustomerEmail, "course", courseName, "progress", status.Progress)
		actions = append(actions, SystemActionResult{
			Success: true,
			Action:  ActionEscalateToProduct,
			Message: "completion claim disagrees with learning system, manual review required",
			Details: map[string]any{"course": courseName, "progress": status.Progress},
		})
		return escalated(ScenarioCourseCompletion,
			respond.CourseCompletion(req.CustomerName, courseName, respond.CourseEscalated),
			actions, checks), nil
	}

	mark, err := h.learning.MarkCourseComplete(ctx, req.CustomerEmail, courseName)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: mark course complete: %w", err)
	}
	actions = append(actions, SystemActionResult{
		Success: mark.Success,
		Action:  ActionMarkCourseComplete,
		Message: mark.Message,
		Details: mark.Details,
	})

	if mark.Success {
		h.logger.Info("course marked complete", "email", req.CustomerEmail, "course", courseName)
		return autoResolved(ScenarioCourseCompletion,
			respond.CourseCompletion(req.CustomerName, courseName, respond.CourseAutoCompleted),
			actions, checks), nil
	}

	h.logger.Warn("failed to mark course complete, escalating", "email", req.CustomerEmail, "course", courseName)
	actions = append(actions, SystemActionResult{
		Success: true,
		Action:  ActionEscalateToProduct,
		Message: "mark-complete call did not take effect, manual review required",
		Details: map[string]any{"course": courseName},
	})
	return escalated(ScenarioCourseCompletion,
		respond.CourseCompletion(req.CustomerName, courseName, respond.CourseEscalated),
		actions, checks), nil
}
