package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, sys Systems) *Engine {
	t.Helper()
	return NewEngine(sys, EngineConfig{
		CallTimeout:   time.Second,
		TicketQueue:   "Support",
		HardwareQueue: "Hardware Support",
	}, nil, nil)
}

func TestEngineRun_RoutesToScenarioHandler(t *testing.T) {
	sys, dir, _, _, _, _, _ := stubSystems()
	dir.lock = LockStatus{
		OpResult:      okEnvelope("Account is locked"),
		IsLocked:      true,
		CanAutoUnlock: true,
	}
	dir.unlock = okEnvelope("Account successfully unlocked")

	e := newTestEngine(t, sys)
	res := e.Run(context.Background(), ScenarioAccountUnlock, testRequest())

	assert.Equal(t, DispositionAutoResolved, res.Disposition())
	assert.Equal(t, ScenarioAccountUnlock, res.Scenario)
	require.Len(t, res.SystemActions, 1)
	assert.Equal(t, ActionUnlockAccount, res.SystemActions[0].Action)
}

func TestEngineRun_UnknownScenarioDeclines(t *testing.T) {
	sys, _, _, _, _, _, _ := stubSystems()
	e := newTestEngine(t, sys)

	res := e.Run(context.Background(), Scenario("billing_dispute"), testRequest())

	assert.Equal(t, DispositionDeclined, res.Disposition())
	assert.False(t, res.Handled)
	assert.Nil(t, res.Response)
	assert.Empty(t, res.SystemActions)
	assert.Empty(t, res.VerificationResults)
}

func TestEngineRun_FacadeFailureDeclinesCleanly(t *testing.T) {
	sys, dir, _, _, _, _, _ := stubSystems()
	dir.lockErr = errBackendDown

	e := newTestEngine(t, sys)
	res := e.Run(context.Background(), ScenarioAccountUnlock, testRequest())

	assert.Equal(t, DispositionDeclined, res.Disposition())
	assert.Equal(t, ScenarioAccountUnlock, res.Scenario)
	assert.False(t, res.AIResolved)
	assert.False(t, res.RequiresHuman)
	assert.Nil(t, res.Response, "no partial customer response may leak from a failed run")
	assert.Empty(t, res.SystemActions)
	assert.Empty(t, res.VerificationResults)
}

func TestEngineRun_HandlerPanicDeclines(t *testing.T) {
	sys, _, _, _, _, kb, _ := stubSystems()
	kb.panics = true

	e := newTestEngine(t, sys)

	var res Result
	require.NotPanics(t, func() {
		res = e.Run(context.Background(), ScenarioGeneralSupport, testRequest())
	})
	assert.Equal(t, DispositionDeclined, res.Disposition())
	assert.Nil(t, res.Response)
}

func TestEngineRun_ConcurrentRunsAreIndependent(t *testing.T) {
	sys, dir, _, _, _, kb, tickets := stubSystems()
	dir.lock = LockStatus{OpResult: okEnvelope("Account is not locked"), IsLocked: false}
	kb.hit = KBHit{
		OpResult:  okEnvelope("article found"),
		Found:     true,
		Title:     "VPN Setup",
		URL:       "https://kb.example.com/vpn",
		Relevance: 0.9,
	}
	tickets.ticket = TicketRef{OpResult: okEnvelope("ticket created"), Key: "SUP-1", URL: "https://tickets.example.com/SUP-1"}

	e := newTestEngine(t, sys)

	const runs = 16
	results := make(chan Result, runs)
	for i := 0; i < runs; i++ {
		scenario := ScenarioAccountUnlock
		if i%2 == 1 {
			scenario = ScenarioGeneralSupport
		}
		go func(s Scenario) {
			results <- e.Run(context.Background(), s, testRequest())
		}(scenario)
	}

	for i := 0; i < runs; i++ {
		res := <-results
		assert.Equal(t, DispositionAutoResolved, res.Disposition())
	}
}

func TestNewEngine_RejectsMissingCapability(t *testing.T) {
	sys, _, _, _, _, _, _ := stubSystems()
	sys.Knowledge = nil

	assert.Panics(t, func() {
		NewEngine(sys, EngineConfig{}, nil, nil)
	})
}
