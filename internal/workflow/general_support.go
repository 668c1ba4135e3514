package workflow

import (
	"context"
	"fmt"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// DefaultRelevanceThreshold is the knowledge-base score a match must strictly
// exceed to resolve the request. Tunable policy, not a structural constant;
// 0.75 preserves the support dashboard's historical behavior.
const DefaultRelevanceThreshold = 0.75

// GeneralSupportHandler is the catch-all: answer from the knowledge base when
// a good match exists, otherwise file a general support ticket.
type GeneralSupportHandler struct {
	knowledge          Knowledge
	ticketing          Ticketing
	ticketQueue        string
	relevanceThreshold float64
	logger             *logging.Logger
}

// NewGeneralSupportHandler creates the general/knowledge-base fallback
// handler. A zero threshold selects DefaultRelevanceThreshold.
func NewGeneralSupportHandler(knowledge Knowledge, ticketing Ticketing, ticketQueue string, relevanceThreshold float64, logger *logging.Logger) *GeneralSupportHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if ticketQueue == "" {
		ticketQueue = "Support"
	}
	if relevanceThreshold <= 0 {
		relevanceThreshold = DefaultRelevanceThreshold
	}
	return &GeneralSupportHandler{
		knowledge:          knowledge,
		ticketing:          ticketing,
		ticketQueue:        ticketQueue,
		relevanceThreshold: relevanceThreshold,
		logger:             logger,
	}
}

// Scenario reports which request category this handler owns.
func (h *GeneralSupportHandler) Scenario() Scenario { return ScenarioGeneralSupport }

// Handle runs search-kb → answer-or-ticket for one request.
func (h *GeneralSupportHandler) Handle(ctx context.Context, req Request) (Result, error) {
	var actions []SystemActionResult

	h.logger.Info("searching knowledge base", "scenario", ScenarioGeneralSupport, "query", req.Subject)
	hit, err := h.knowledge.SearchKnowledgeBase(ctx, req.Subject)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: search knowledge base: %w", err)
	}
	actions = append(actions, SystemActionResult{
		Success: hit.Success,
		Action:  ActionSearchKnowledgeBase,
		Message: hit.Message,
		Details: hit.Details,
	})

	if hit.Success && hit.Found && hit.Relevance > h.relevanceThreshold {
		h.logger.Info("relevant article found", "title", hit.Title, "relevance", hit.Relevance)
		return autoResolved(ScenarioGeneralSupport,
			respond.KnowledgeArticle(req.CustomerName, hit.Title, hit.URL),
			actions, nil), nil
	}

	h.logger.Info("no relevant article, creating support ticket",
		"best_relevance", hit.Relevance, "threshold", h.relevanceThreshold)
	ticket, err := h.ticketing.CreateTicket(ctx, req.Subject, req.Content, h.ticketQueue)
	if err != nil {
		return Result{}, fmt.Errorf("workflow: create support ticket: %w", err)
	}
	actions = append(actions, SystemActionResult{
		Success: ticket.Success,
		Action:  ActionCreateTicket,
		Message: ticket.Message,
		Details: ticket.Details,
	})

	return escalated(ScenarioGeneralSupport,
		respond.TicketCreated(req.CustomerName, ticket.Key, ticket.URL),
		actions, nil), nil
}
