package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctisdesk/autopilot/internal/respond"
	"github.com/ctisdesk/autopilot/internal/workflow"
)

func escalatedResult() workflow.Result {
	tpl := respond.PrinterTicket("Jordan", "SUP-4242", "https://tracker.example.com/browse/SUP-4242")
	return workflow.Result{
		Scenario:      workflow.ScenarioPrinterIssue,
		Handled:       true,
		RequiresHuman: true,
		Response:      &tpl,
		SystemActions: []workflow.SystemActionResult{{
			Success: true,
			Action:  workflow.ActionCreateITTicket,
			Message: "ticket created",
		}},
	}
}

func TestStore_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, nil)

	mock.ExpectExec("INSERT INTO workflow_runs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := workflow.Request{CustomerEmail: "jordan@example.com", Subject: "Printer still broken", IsThread: true}
	id, err := store.Record(context.Background(), req, escalatedResult())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordDeclinedRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, nil)

	mock.ExpectExec("INSERT INTO workflow_runs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	res := workflow.Result{Scenario: workflow.ScenarioGeneralSupport}
	_, err = store.Record(context.Background(), workflow.Request{CustomerEmail: "a@b.com"}, res)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordDatabaseErrorSurfaces(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, nil)

	mock.ExpectExec("INSERT INTO workflow_runs").
		WillReturnError(errors.New("connection reset"))

	_, err = store.Record(context.Background(), workflow.Request{}, escalatedResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store run record")
}

func TestStore_Recent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, nil)

	actions, err := json.Marshal([]workflow.SystemActionResult{{Success: true, Action: workflow.ActionUnlockAccount}})
	require.NoError(t, err)
	checks, err := json.Marshal([]workflow.VerificationResult{{Success: true, Status: workflow.VerificationVerified}})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "scenario", "disposition", "customer_email", "subject", "is_thread",
		"response_subject", "system_actions", "verification_results", "created_at",
	}).AddRow(
		uuid.New(), "account_unlock", "auto_resolved", "jordan@example.com", "Locked out", false,
		"Account Unlocked - You Can Now Log In", actions, checks, time.Now().UTC(),
	)

	mock.ExpectQuery("SELECT (.+) FROM workflow_runs").
		WithArgs(10).
		WillReturnRows(rows)

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, workflow.ScenarioAccountUnlock, rec.Scenario)
	assert.Equal(t, workflow.DispositionAutoResolved, rec.Disposition)
	require.Len(t, rec.SystemActions, 1)
	assert.Equal(t, workflow.ActionUnlockAccount, rec.SystemActions[0].Action)
	require.Len(t, rec.VerificationResults, 1)
	assert.Equal(t, workflow.VerificationVerified, rec.VerificationResults[0].Status)
}

func TestStore_RecentByScenario(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, nil)

	rows := sqlmock.NewRows([]string{
		"id", "scenario", "disposition", "customer_email", "subject", "is_thread",
		"response_subject", "system_actions", "verification_results", "created_at",
	})
	mock.ExpectQuery("SELECT (.+) FROM workflow_runs").
		WithArgs("printer_issue", 5).
		WillReturnRows(rows)

	records, err := store.RecentByScenario(context.Background(), workflow.ScenarioPrinterIssue, 5)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
