package workflow

import "context"

// OpResult is the uniform envelope returned by every system-of-record
// operation. Success is false only for remediation calls that were accepted
// but did not take effect; expected business outcomes ("not locked", "no
// article found") are successful calls whose typed fields say so.
// Infrastructure problems surface as Go errors, never as envelope state.
type OpResult struct {
	Success bool
	Message string
	Details map[string]any
}

// LockStatus reports an account's lock state in the directory service.
type LockStatus struct {
	OpResult
	IsLocked      bool
	CanAutoUnlock bool
	LockDuration  string
}

// OnboardingStatus reports whether an identity exists in the directory.
type OnboardingStatus struct {
	OpResult
	Exists bool
}

// CourseStatus reports actual completion state in the learning system.
type CourseStatus struct {
	OpResult
	IsComplete bool
	Progress   int
}

// HealthStatusOperational is the healthy value of HealthStatus.Status; any
// other value is treated as a degradation.
const HealthStatusOperational = "operational"

// HealthStatus reports a subsystem's health-check state.
type HealthStatus struct {
	OpResult
	Status string
}

// KBHit is the best knowledge-base match for a query. Found is false when the
// search ran but nothing matched at all.
type KBHit struct {
	OpResult
	Found     bool
	Title     string
	URL       string
	Relevance float64
}

// TicketRef identifies a ticket created in the tracking system.
type TicketRef struct {
	OpResult
	Key string
	URL string
}

// AlertSeverity grades operational alerts.
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// Directory is the identity system of record. Check and verify operations are
// side-effect free; UnlockAccount must be safe to call at most once per run.
type Directory interface {
	CheckAccountLockStatus(ctx context.Context, email string) (LockStatus, error)
	UnlockAccount(ctx context.Context, email string) (OpResult, error)
	VerifyUserOnboarding(ctx context.Context, email string) (OnboardingStatus, error)
}

// Collaboration provisions access to collaboration tooling.
type Collaboration interface {
	ProvisionChatOpsAccess(ctx context.Context, email string) (OpResult, error)
	ProvisionDocSiteAccess(ctx context.Context, email, siteName string) (OpResult, error)
}

// Learning is the learning-management system of record.
type Learning interface {
	CheckCourseCompletion(ctx context.Context, email, courseName string) (CourseStatus, error)
	MarkCourseComplete(ctx context.Context, email, courseName string) (OpResult, error)
}

// Operations covers health checks and operational alerting.
type Operations interface {
	CheckSystemHealth(ctx context.Context, systemName string) (HealthStatus, error)
	CreateOpsAlert(ctx context.Context, title, description string, severity AlertSeverity) (OpResult, error)
}

// Knowledge searches the self-service knowledge base.
type Knowledge interface {
	SearchKnowledgeBase(ctx context.Context, query string) (KBHit, error)
}

// Ticketing files tickets for human follow-up.
type Ticketing interface {
	CreateTicket(ctx context.Context, title, description, queue string) (TicketRef, error)
}

// Systems aggregates the capability interfaces handlers depend on. Each field
// can be satisfied by a different backend; tests substitute deterministic
// fakes per capability.
type Systems struct {
	Directory     Directory
	Collaboration Collaboration
	Learning      Learning
	Operations    Operations
	Knowledge     Knowledge
	Ticketing     Ticketing
}
