package systems

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ctisdesk/autopilot/internal/workflow"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

const ticketClientTimeout = 15 * time.Second

// TicketClient files tickets in the company tracker over its REST API.
type TicketClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *logging.Logger
}

var _ workflow.Ticketing = (*TicketClient)(nil)

// TicketOption configures a TicketClient.
type TicketOption func(*TicketClient)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) TicketOption {
	return func(c *TicketClient) {
		c.httpClient = hc
	}
}

// NewTicketClient creates a tracker client for the given base URL.
func NewTicketClient(baseURL, apiToken string, logger *logging.Logger, opts ...TicketOption) *TicketClient {
	if logger == nil {
		logger = logging.Default()
	}
	c := &TicketClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: ticketClientTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createTicketRequest struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

type createTicketResponse struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// CreateTicket posts a new ticket and returns its tracker reference.
func (c *TicketClient) CreateTicket(ctx context.Context, title, description, queue string) (workflow.TicketRef, error) {
	payload, err := json.Marshal(createTicketRequest{
		Summary:     title,
		Description: description,
		Queue:       queue,
	})
	if err != nil {
		return workflow.TicketRef{}, fmt.Errorf("systems: marshal ticket request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tickets", bytes.NewReader(payload))
	if err != nil {
		return workflow.TicketRef{}, fmt.Errorf("systems: build ticket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return workflow.TicketRef{}, fmt.Errorf("systems: create ticket: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return workflow.TicketRef{}, fmt.Errorf("systems: read ticket response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return workflow.TicketRef{}, fmt.Errorf("systems: tracker returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created createTicketResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return workflow.TicketRef{}, fmt.Errorf("systems: decode ticket response: %w", err)
	}

	c.logger.Info("ticket created", "key", created.Key, "queue", queue)
	ref := workflow.TicketRef{Key: created.Key, URL: created.URL}
	ref.Success = true
	ref.Message = "Ticket created successfully"
	ref.Details = map[string]any{"key": created.Key, "queue": queue, "status": created.Status}
	return ref, nil
}
