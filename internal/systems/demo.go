// Package systems provides backends for the workflow engine's system-of-record
// capabilities: a deterministic demo backend for local runs, a Redis-backed
// knowledge base, and an HTTP client for the ticket tracker.
package systems

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/ctisdesk/autopilot/internal/workflow"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// DemoSystems implements every capability with deterministic simulated
// backends. Outcomes are derived by hashing the request inputs, so the same
// request always takes the same path, which keeps demo runs reproducible.
type DemoSystems struct {
	articles []Article
	logger   *logging.Logger
}

var (
	_ workflow.Directory     = (*DemoSystems)(nil)
	_ workflow.Collaboration = (*DemoSystems)(nil)
	_ workflow.Learning      = (*DemoSystems)(nil)
	_ workflow.Operations    = (*DemoSystems)(nil)
	_ workflow.Knowledge     = (*DemoSystems)(nil)
	_ workflow.Ticketing     = (*DemoSystems)(nil)
)

// NewDemoSystems creates the demo backend seeded with the default articles.
func NewDemoSystems(logger *logging.Logger) *DemoSystems {
	if logger == nil {
		logger = logging.Default()
	}
	return &DemoSystems{articles: DefaultArticles(), logger: logger}
}

// All returns a Systems facade with every capability served by the demo backend.
func (d *DemoSystems) All() workflow.Systems {
	return workflow.Systems{
		Directory:     d,
		Collaboration: d,
		Learning:      d,
		Operations:    d,
		Knowledge:     d,
		Ticketing:     d,
	}
}

// roll maps a salted input onto [0,100) so outcome probabilities can be
// expressed as percentage cutoffs while staying input-deterministic.
func roll(salt, input string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(salt))
	h.Write([]byte(strings.ToLower(input)))
	return h.Sum32() % 100
}

// CheckAccountLockStatus reports a lock for roughly 80% of addresses.
func (d *DemoSystems) CheckAccountLockStatus(ctx context.Context, email string) (workflow.LockStatus, error) {
	d.logger.Debug("demo directory: checking lock status", "email", email)

	isLocked := roll("lock", email) < 80
	status := workflow.LockStatus{
		IsLocked:      isLocked,
		CanAutoUnlock: isLocked,
		LockDuration:  "45m",
	}
	status.Success = true
	if isLocked {
		status.Message = "Account is locked"
		status.Details = map[string]any{
			"email":      email,
			"lockReason": "Too many failed login attempts",
		}
	} else {
		status.Message = "Account is not locked"
		status.Details = map[string]any{"email": email}
	}
	return status, nil
}

// UnlockAccount always succeeds in the demo backend.
func (d *DemoSystems) UnlockAccount(ctx context.Context, email string) (workflow.OpResult, error) {
	d.logger.Debug("demo directory: unlocking account", "email", email)
	return workflow.OpResult{
		Success: true,
		Message: "Account successfully unlocked",
		Details: map[string]any{"email": email, "resetRequired": false},
	}, nil
}

// VerifyUserOnboarding finds roughly 70% of addresses in the directory.
func (d *DemoSystems) VerifyUserOnboarding(ctx context.Context, email string) (workflow.OnboardingStatus, error) {
	d.logger.Debug("demo directory: verifying onboarding", "email", email)

	exists := roll("onboard", email) < 70
	status := workflow.OnboardingStatus{Exists: exists}
	status.Success = true
	if exists {
		status.Message = "User found in directory"
		status.Details = map[string]any{"email": email, "department": "Engineering"}
	} else {
		status.Message = "User not found - onboarding incomplete"
		status.Details = map[string]any{"email": email}
	}
	return status, nil
}

// ProvisionChatOpsAccess simulates a chat workspace invite.
func (d *DemoSystems) ProvisionChatOpsAccess(ctx context.Context, email string) (workflow.OpResult, error) {
	d.logger.Debug("demo collaboration: provisioning chat access", "email", email)
	return workflow.OpResult{
		Success: true,
		Message: "Slack access provisioned successfully",
		Details: map[string]any{
			"email":         email,
			"workspaceUrl":  "https://yourcompany.slack.com",
			"channelsAdded": []string{"#general", "#announcements", "#engineering"},
		},
	}, nil
}

// ProvisionDocSiteAccess simulates a document-site membership grant.
func (d *DemoSystems) ProvisionDocSiteAccess(ctx context.Context, email, siteName string) (workflow.OpResult, error) {
	d.logger.Debug("demo collaboration: provisioning site access", "email", email, "site", siteName)

	slug := strings.ReplaceAll(strings.ToLower(siteName), " ", "-")
	return workflow.OpResult{
		Success: true,
		Message: fmt.Sprintf("SharePoint access to %q granted", siteName),
		Details: map[string]any{
			"email":           email,
			"siteName":        siteName,
			"siteUrl":         "https://yourcompany.sharepoint.com/sites/" + slug,
			"permissionLevel": "Member",
		},
	}, nil
}

// CheckCourseCompletion reports completion for roughly 60% of email+course pairs.
func (d *DemoSystems) CheckCourseCompletion(ctx context.Context, email, courseName string) (workflow.CourseStatus, error) {
	d.logger.Debug("demo learning: checking completion", "email", email, "course", courseName)

	isComplete := roll("course", email+courseName) < 60
	progress := 100
	if !isComplete {
		progress = int(roll("progress", email+courseName)%95) + 1
	}
	status := workflow.CourseStatus{IsComplete: isComplete, Progress: progress}
	status.Success = true
	if isComplete {
		status.Message = "Course is complete"
	} else {
		status.Message = "Course is not fully complete"
	}
	status.Details = map[string]any{"email": email, "courseName": courseName, "progress": progress}
	return status, nil
}

// MarkCourseComplete always succeeds in the demo backend.
func (d *DemoSystems) MarkCourseComplete(ctx context.Context, email, courseName string) (workflow.OpResult, error) {
	d.logger.Debug("demo learning: marking complete", "email", email, "course", courseName)
	return workflow.OpResult{
		Success: true,
		Message: "Course marked as complete",
		Details: map[string]any{"email": email, "courseName": courseName, "creditsEarned": 2.5},
	}, nil
}

// CheckSystemHealth reports a degradation for roughly 20% of subsystem names.
func (d *DemoSystems) CheckSystemHealth(ctx context.Context, systemName string) (workflow.HealthStatus, error) {
	d.logger.Debug("demo operations: checking health", "system", systemName)

	degraded := roll("health", systemName) < 20
	status := workflow.HealthStatus{Status: workflow.HealthStatusOperational}
	status.Success = true
	status.Message = "System health: OK"
	status.Details = map[string]any{"systemName": systemName, "uptime": "99.8%"}
	if degraded {
		status.Status = "degraded"
		status.Message = "System health degraded"
		status.Details["affectedServices"] = []string{systemName, "webhook-delivery"}
	}
	return status, nil
}

// CreateOpsAlert files a simulated incident with an INC- identifier.
func (d *DemoSystems) CreateOpsAlert(ctx context.Context, title, description string, severity workflow.AlertSeverity) (workflow.OpResult, error) {
	h := fnv.New32a()
	h.Write([]byte(title))
	incidentID := "INC-" + strings.ToUpper(strconv.FormatUint(uint64(h.Sum32()), 36))

	d.logger.Info("demo operations: alert created", "incident", incidentID, "severity", severity)
	return workflow.OpResult{
		Success: true,
		Message: "DevOps alert created",
		Details: map[string]any{
			"incidentId":   incidentID,
			"title":        title,
			"severity":     string(severity),
			"status":       "investigating",
			"assignedTeam": "DevOps On-Call",
		},
	}, nil
}

// SearchKnowledgeBase scores the seeded articles and returns the best match.
func (d *DemoSystems) SearchKnowledgeBase(ctx context.Context, query string) (workflow.KBHit, error) {
	d.logger.Debug("demo knowledge: searching", "query", query)

	best, relevance, matched, ok := bestMatch(d.articles, query)
	hit := workflow.KBHit{}
	hit.Success = true
	if !ok {
		hit.Message = "knowledge base is empty"
		return hit, nil
	}
	hit.Found = true
	hit.Title = best.Title
	hit.URL = best.URL
	hit.Relevance = relevance
	hit.Message = "Knowledge base article found"
	hit.Details = map[string]any{"query": query, "matchScore": matched, "totalResults": len(d.articles)}
	return hit, nil
}

// CreateTicket files a simulated tracker ticket with a SUP- key.
func (d *DemoSystems) CreateTicket(ctx context.Context, title, description, queue string) (workflow.TicketRef, error) {
	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte(description))
	key := fmt.Sprintf("SUP-%d", 1000+h.Sum32()%9000)

	d.logger.Info("demo ticketing: ticket created", "key", key, "queue", queue)
	ref := workflow.TicketRef{
		Key: key,
		URL: "https://yourcompany.atlassian.net/browse/" + key,
	}
	ref.Success = true
	ref.Message = "Ticket created successfully"
	ref.Details = map[string]any{
		"key":      key,
		"summary":  title,
		"queue":    queue,
		"status":   "Open",
		"priority": "Medium",
	}
	return ref, nil
}
