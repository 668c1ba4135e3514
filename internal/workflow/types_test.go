package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctisdesk/autopilot/internal/respond"
)

func TestParseScenario(t *testing.T) {
	for _, s := range []Scenario{
		ScenarioAccountUnlock, ScenarioAccessRequest, ScenarioCourseCompletion,
		ScenarioNotificationHealth, ScenarioPrinterIssue, ScenarioGeneralSupport,
	} {
		got, ok := ParseScenario(string(s))
		assert.True(t, ok, s)
		assert.Equal(t, s, got)
	}

	_, ok := ParseScenario("vacation_request")
	assert.False(t, ok)
	_, ok = ParseScenario("")
	assert.False(t, ok)
}

func TestResultConstructorsKeepFlagsLegal(t *testing.T) {
	tpl := respond.PrinterGuide("Jordan")
	actions := []SystemActionResult{{Success: true, Action: ActionCreateITTicket}}
	checks := []VerificationResult{{Success: true, Status: VerificationVerified}}

	d := declined(ScenarioGeneralSupport)
	assert.False(t, d.Handled)
	assert.False(t, d.AIResolved)
	assert.False(t, d.RequiresHuman)
	assert.Nil(t, d.Response)
	assert.Equal(t, DispositionDeclined, d.Disposition())

	a := autoResolved(ScenarioPrinterIssue, tpl, actions, checks)
	assert.True(t, a.Handled)
	assert.True(t, a.AIResolved)
	assert.False(t, a.RequiresHuman)
	require.NotNil(t, a.Response)
	assert.Equal(t, DispositionAutoResolved, a.Disposition())

	e := escalated(ScenarioPrinterIssue, tpl, actions, checks)
	assert.True(t, e.Handled)
	assert.False(t, e.AIResolved)
	assert.True(t, e.RequiresHuman)
	require.NotNil(t, e.Response)
	assert.Equal(t, DispositionEscalated, e.Disposition())
}

func TestVerificationHelper(t *testing.T) {
	v := verification(true, true, "confirmed", map[string]any{"progress": 100})
	assert.True(t, v.Success)
	assert.Equal(t, VerificationVerified, v.Status)

	v = verification(true, false, "record disagrees", nil)
	assert.True(t, v.Success)
	assert.Equal(t, VerificationFailed, v.Status)
}

func TestResultJSONShape(t *testing.T) {
	tpl := respond.PrinterGuide("Jordan")
	res := escalated(ScenarioPrinterIssue, tpl,
		[]SystemActionResult{{Success: true, Action: ActionCreateITTicket, Message: "ticket created"}},
		nil)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "printer_issue", decoded["scenario"])
	assert.Equal(t, true, decoded["handled"])
	assert.Equal(t, false, decoded["aiResolved"])
	assert.Equal(t, true, decoded["requiresHuman"])
	assert.Contains(t, decoded, "response")
	assert.Contains(t, decoded, "systemActions")
	assert.NotContains(t, decoded, "verificationResults")
}
