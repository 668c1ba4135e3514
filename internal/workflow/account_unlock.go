package workflow

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// AccountUnlockHandler verifies the account is actually locked before acting.
// Not locked is a normal outcome: the customer gets an explanation and the run
// resolves without touching the account.
type AccountUnlockHandler struct {
	directory Directory
	logger    *logging.Logger
}

// NewAccountUnlockHandler creates the account-unlock scenario handler.
func NewAccountUnlockHandler(directory Directory, logger *logging.Logger) *AccountUnlockHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountUnlockHandler{directory: directory, logger: logger}
}

// Scenario reports which request category this handler owns.
func (h *AccountUnlockHandler) Scenario() Scenario { return ScenarioAccountUnlock }

// Handle runs verify → unlock → escalate for one request.
func (h *AccountUnlockHandler) Handle(ctx context.Context, req Request) (Result, error) {
	var (
		actions []SystemActionResult
		checks  []VerificationResult
	)

	h.logger.Info("checking account lock status", "scenario", ScenarioAccountUnlock, "email", req.CustomerEmail)
	lock, err := h.directory.CheckAccountLockStatus(ctx, req.CustomerEmail)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: check account lock status: %w", err)
	}
	checks = append(checks, verification(lock.Success, lock.IsLocked, lock.Message, lock.Details))

	if !lock.IsLocked {
		h.logger.Info("account not locked, informing customer", "email", req.CustomerEmail)
		return autoResolved(ScenarioAccountUnlock,
			respond.AccountUnlock(req.CustomerName, respond.UnlockNotLocked),
			actions, checks), nil
	}

	if lock.CanAutoUnlock {
		unlock, err := h.directory.UnlockAccount(ctx, req.CustomerEmail)
		if err != nil {
			return Result{}, fmt.Errorf("workflow: unlock account: %w", err)
		}
		actions = append(actions, SystemActionResult{
			Success: unlock.Success,
			Action:  ActionUnlockAccount,
			Message: unlock.Message,
			Details: unlock.Details,
		})

		if unlock.Success {
			h.logger.Info("account auto-unlocked", "email", req.CustomerEmail)
			return autoResolved(ScenarioAccountUnlock,
				respond.AccountUnlock(req.CustomerName, respond.UnlockAuto),
				actions, checks), nil
		}
	}

	h.logger.Warn("cannot auto-unlock, escalating to IT", "email", req.CustomerEmail, "lock_duration", lock.LockDuration)
	actions = append(actions, SystemActionResult{
		Success: true,
		Action:  ActionEscalateToIT,
		Message: "account unlock requires manual IT intervention",
		Details: map[string]any{
			"reason":        "security policy requires manual verification",
			"lock_duration": lock.LockDuration,
		},
	})

	return escalated(ScenarioAccountUnlock,
		respond.AccountUnlock(req.CustomerName, respond.UnlockEscalated),
		actions, checks), nil
}
