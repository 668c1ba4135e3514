package workflow

import (
	"context"
	"errors"
)

// Scripted system-of-record fakes. Each capability returns whatever the test
// configured and counts calls so tests can assert which operations ran.

var errBackendDown = errors.New("backend unavailable")

type stubDirectory struct {
	lock    LockStatus
	lockErr error

	unlock      OpResult
	unlockErr   error
	unlockCalls int

	onboarding    OnboardingStatus
	onboardingErr error
}

func (s *stubDirectory) CheckAccountLockStatus(ctx context.Context, email string) (LockStatus, error) {
	return s.lock, s.lockErr
}

func (s *stubDirectory) UnlockAccount(ctx context.Context, email string) (OpResult, error) {
	s.unlockCalls++
	return s.unlock, s.unlockErr
}

func (s *stubDirectory) VerifyUserOnboarding(ctx context.Context, email string) (OnboardingStatus, error) {
	return s.onboarding, s.onboardingErr
}

type stubCollaboration struct {
	chatOps       OpResult
	chatOpsErr    error
	chatOpsCalls  int
	docSite       OpResult
	docSiteErr    error
	docSiteCalls  int
	lastSiteName  string
	lastChatEmail string
}

func (s *stubCollaboration) ProvisionChatOpsAccess(ctx context.Context, email string) (OpResult, error) {
	s.chatOpsCalls++
	s.lastChatEmail = email
	return s.chatOps, s.chatOpsErr
}

func (s *stubCollaboration) ProvisionDocSiteAccess(ctx context.Context, email, siteName string) (OpResult, error) {
	s.docSiteCalls++
	s.lastSiteName = siteName
	return s.docSite, s.docSiteErr
}

type stubLearning struct {
	status     CourseStatus
	statusErr  error
	mark       OpResult
	markErr    error
	markCalls  int
	lastCourse string
}

func (s *stubLearning) CheckCourseCompletion(ctx context.Context, email, courseName string) (CourseStatus, error) {
	s.lastCourse = courseName
	return s.status, s.statusErr
}

func (s *stubLearning) MarkCourseComplete(ctx context.Context, email, courseName string) (OpResult, error) {
	s.markCalls++
	return s.mark, s.markErr
}

type stubOperations struct {
	health     HealthStatus
	healthErr  error
	alert      OpResult
	alertErr   error
	alertCalls int
}

func (s *stubOperations) CheckSystemHealth(ctx context.Context, systemName string) (HealthStatus, error) {
	return s.health, s.healthErr
}

func (s *stubOperations) CreateOpsAlert(ctx context.Context, title, description string, severity AlertSeverity) (OpResult, error) {
	s.alertCalls++
	return s.alert, s.alertErr
}

type stubKnowledge struct {
	hit    KBHit
	hitErr error
	panics bool
}

func (s *stubKnowledge) SearchKnowledgeBase(ctx context.Context, query string) (KBHit, error) {
	if s.panics {
		panic("knowledge backend corrupted")
	}
	return s.hit, s.hitErr
}

type stubTicketing struct {
	ticket      TicketRef
	ticketErr   error
	ticketCalls int
	lastQueue   string
}

func (s *stubTicketing) CreateTicket(ctx context.Context, title, description, queue string) (TicketRef, error) {
	s.ticketCalls++
	s.lastQueue = queue
	return s.ticket, s.ticketErr
}

func okEnvelope(message string) OpResult {
	return OpResult{Success: true, Message: message}
}

func stubSystems() (Systems, *stubDirectory, *stubCollaboration, *stubLearning, *stubOperations, *stubKnowledge, *stubTicketing) {
	dir := &stubDirectory{}
	collab := &stubCollaboration{}
	learn := &stubLearning{}
	ops := &stubOperations{}
	kb := &stubKnowledge{}
	tickets := &stubTicketing{}
	return Systems{
		Directory:     dir,
		Collaboration: collab,
		Learning:      learn,
		Operations:    ops,
		Knowledge:     kb,
		Ticketing:     tickets,
	}, dir, collab, learn, ops, kb, tickets
}
