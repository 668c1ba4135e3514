// Package audit persists a durable record of every workflow run so support
// leads can review what the automation did and why.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ctisdesk/autopilot/internal/workflow"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

var auditTracer = otel.Tracer("autopilot/audit")

// RunRecord is one persisted workflow run.
type RunRecord struct {
	ID                  uuid.UUID
	Scenario            workflow.Scenario
	Disposition         workflow.Disposition
	CustomerEmail       string
	Subject             string
	IsThread            bool
	ResponseSubject     string
	SystemActions       []workflow.SystemActionResult
	VerificationResults []workflow.VerificationResult
	CreatedAt           time.Time
}

// Store writes run records to Postgres.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewStore creates an audit store on the given database handle.
func NewStore(db *sql.DB, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{db: db, logger: logger}
}

// Record persists the outcome of one run. Declined runs are recorded too:
// a run the automation refused is exactly what a reviewer wants to see.
func (s *Store) Record(ctx context.Context, req workflow.Request, res workflow.Result) (uuid.UUID, error) {
	ctx, span := auditTracer.Start(ctx, "audit.record")
	defer span.End()
	span.SetAttributes(
		attribute.String("workflow.scenario", string(res.Scenario)),
		attribute.String("workflow.disposition", string(res.Disposition())),
	)

	actions, err := json.Marshal(res.SystemActions)
	if err != nil {
		return uuid.Nil, fmt.Errorf("audit: marshal system actions: %w", err)
	}
	checks, err := json.Marshal(res.VerificationResults)
	if err != nil {
		return uuid.Nil, fmt.Errorf("audit: marshal verification results: %w", err)
	}

	responseSubject := ""
	if res.Response != nil {
		responseSubject = res.Response.Subject
	}

	id := uuid.New()
	now := time.Now().UTC()
	query := `
		INSERT INTO workflow_runs (
			id, scenario, disposition, customer_email, subject, is_thread,
			response_subject, system_actions, verification_results, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		id, res.Scenario, res.Disposition(), req.CustomerEmail, req.Subject, req.IsThread,
		responseSubject, actions, checks, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("audit: store run record: %w", err)
	}

	s.logger.Info("run recorded",
		"id", id,
		"scenario", res.Scenario,
		"disposition", res.Disposition(),
	)
	return id, nil
}

// Recent returns the newest run records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, scenario, disposition, customer_email, subject, is_thread,
			   response_subject, system_actions, verification_results, created_at
		FROM workflow_runs
		ORDER BY created_at DESC
		LIMIT $1
	`
	return s.queryRecords(ctx, query, limit)
}

// RecentByScenario returns the newest run records for one scenario.
func (s *Store) RecentByScenario(ctx context.Context, scenario workflow.Scenario, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, scenario, disposition, customer_email, subject, is_thread,
			   response_subject, system_actions, verification_results, created_at
		FROM workflow_runs
		WHERE scenario = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return s.queryRecords(ctx, query, scenario, limit)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]*RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: query run records: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		var r RunRecord
		var responseSubject sql.NullString
		var actions, checks []byte

		err := rows.Scan(
			&r.ID, &r.Scenario, &r.Disposition, &r.CustomerEmail, &r.Subject, &r.IsThread,
			&responseSubject, &actions, &checks, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("audit: scan run record: %w", err)
		}

		r.ResponseSubject = responseSubject.String
		if len(actions) > 0 {
			if err := json.Unmarshal(actions, &r.SystemActions); err != nil {
				return nil, fmt.Errorf("audit: decode system actions: %w", err)
			}
		}
		if len(checks) > 0 {
			if err := json.Unmarshal(checks, &r.VerificationResults); err != nil {
				return nil, fmt.Errorf("audit: decode verification results: %w", err)
			}
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
