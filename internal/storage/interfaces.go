package storage

import (
	"context"

	"venture-fund-lab/internal/domain"
)

// RunRecordStore provides access to run_records storage. Records are
// append-only: a run is written once when it completes.
type RunRecordStore interface {
	// Insert adds a new run record. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, r *domain.RunRecord) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.RunRecord, error)

	// List retrieves the most recent runs, newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.RunRecord, error)
}

// CompanyOutcomeStore provides access to the company_outcomes archive.
// One row per company per scenario per run, written in bulk after a run.
type CompanyOutcomeStore interface {
	// InsertBulk adds multiple outcome rows. Fails the entire batch on any
	// invalid row.
	InsertBulk(ctx context.Context, rows []*domain.OutcomeRow) error

	// GetByRunID retrieves all rows for a run, ordered by scenario then
	// bucket then company index.
	GetByRunID(ctx context.Context, runID string) ([]*domain.OutcomeRow, error)

	// GetByRunScenario retrieves rows for one run/scenario combination.
	GetByRunScenario(ctx context.Context, runID, scenarioID string) ([]*domain.OutcomeRow, error)
}
