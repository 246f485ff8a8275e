package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"plingsync/internal/pling/business/models"
)

// RunRepository archives finished run reports so repeated imports can
// be audited and failed lines replayed against their source sheet.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS sync_runs (
			id SERIAL PRIMARY KEY,
			job TEXT NOT NULL,
			status TEXT NOT NULL,
			total_rows INT NOT NULL,
			sent_rows INT NOT NULL,
			skipped_rows INT NOT NULL,
			failed_rows INT NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sync_run_failures (
			id SERIAL PRIMARY KEY,
			run_id INT NOT NULL REFERENCES sync_runs(id),
			line_no INT NOT NULL,
			fields JSONB,
			reason TEXT NOT NULL
		);
		`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create run history schema: %w", err)
	}
	return nil
}

func (r *RunRepository) SaveReport(report *models.RunReport) error {
	var runID int
	err := r.db.QueryRow(
		`INSERT INTO sync_runs (job, status, total_rows, sent_rows, skipped_rows, failed_rows, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		report.Job, report.Status.String(), report.Total, report.Sent, report.Skipped, report.Failed, time.Now(),
	).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, row := range report.Invalid {
		if err := r.insertFailure(runID, row, row.ValidationMessage); err != nil {
			return err
		}
	}
	for _, outcome := range report.Failures {
		if err := r.insertFailure(runID, outcome.Row, outcome.Reason); err != nil {
			return err
		}
	}
	return nil
}

func (r *RunRepository) insertFailure(runID int, row models.Row, reason string) error {
	fields, err := json.Marshal(row.Fields)
	if err != nil {
		fields = []byte("{}")
	}
	_, err = r.db.Exec(
		`INSERT INTO sync_run_failures (run_id, line_no, fields, reason) VALUES ($1, $2, $3, $4)`,
		runID, row.LineNo, fields, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert failure for line %d: %w", row.LineNo, err)
	}
	return nil
}
