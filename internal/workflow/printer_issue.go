package workflow

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// PrinterIssueHandler has no verification phase: first contact always gets
// the troubleshooting guide, and only a follow-up in the same thread files a
// hardware ticket. The two-phase state lives entirely in Request.IsThread, so
// the handler itself stays stateless.
type PrinterIssueHandler struct {
	ticketing     Ticketing
	hardwareQueue string
	logger        *logging.Logger
}

// NewPrinterIssueHandler creates the printer-issue scenario handler.
// hardwareQueue names the ticket queue for in-person hardware support.
func NewPrinterIssueHandler(ticketing Ticketing, hardwareQueue string, logger *logging.Logger) *PrinterIssueHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if hardwareQueue == "" {
		hardwareQueue = "Hardware Support"
	}
	return &PrinterIssueHandler{ticketing: ticketing, hardwareQueue: hardwareQueue, logger: logger}
}

// Scenario reports which request category this handler owns.
func (h *PrinterIssueHandler) Scenario() Scenario { return ScenarioPrinterIssue }

// Handle sends the guide on first contact and files a ticket on follow-up.
func (h *PrinterIssueHandler) Handle(ctx context.Context, req Request) (Result, error) {
	if !req.IsThread {
		h.logger.Info("first contact, sending troubleshooting guide",
			"scenario", ScenarioPrinterIssue, "email", req.CustomerEmail)
		return autoResolved(ScenarioPrinterIssue,
			respond.PrinterGuide(req.CustomerName),
			nil, nil), nil
	}

	h.logger.Info("follow-up detected, creating hardware ticket",
		"scenario", ScenarioPrinterIssue, "email", req.CustomerEmail)

	ticket, err := h.ticketing.CreateTicket(ctx,
		fmt.Sprintf("Printer Issue - %s", req.Subject),
		fmt.Sprintf("Customer %s tried troubleshooting steps but printer still not working.\n\nOriginal issue: %s",
			req.CustomerEmail, req.Content),
		h.hardwareQueue,
	)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: create hardware ticket: %w", err)
	}

	actions := []SystemActionResult{{
		Success: ticket.Success,
		Action:  ActionCreateITTicket,
		Message: ticket.Message,
		Details: ticket.Details,
	}}

	return escalated(ScenarioPrinterIssue,
		respond.PrinterTicket(req.CustomerName, ticket.Key, ticket.URL),
		actions, nil), nil
}
