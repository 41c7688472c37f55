package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage"
)

// RunRecordStore implements storage.RunRecordStore using PostgreSQL.
// Parameters and scenario summaries are stored as JSONB: they are written
// and read whole, never queried by field.
type RunRecordStore struct {
	pool *Pool
}

// NewRunRecordStore creates a new RunRecordStore.
func NewRunRecordStore(pool *Pool) *RunRecordStore {
	return &RunRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunRecordStore = (*RunRecordStore)(nil)

// Insert adds a new run record. Returns ErrDuplicateKey if run_id exists.
func (s *RunRecordStore) Insert(ctx context.Context, r *domain.RunRecord) error {
	if r == nil || r.RunID == "" {
		return storage.ErrInvalidInput
	}

	params, err := json.Marshal(r.Parameters)
	if err != nil {
		return fmt.Errorf("marshal run parameters: %w", err)
	}
	summaries, err := json.Marshal(r.Summaries)
	if err != nil {
		return fmt.Errorf("marshal run summaries: %w", err)
	}

	query := `
		INSERT INTO run_records (run_id, created_at, parameters, summaries)
		VALUES ($1, $2, $3, $4)
	`

	_, err = s.pool.Exec(ctx, query, r.RunID, r.CreatedAt, params, summaries)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunRecordStore) GetByID(ctx context.Context, runID string) (*domain.RunRecord, error) {
	query := `
		SELECT run_id, created_at, parameters, summaries
		FROM run_records
		WHERE run_id = $1
	`

	row := s.pool.QueryRow(ctx, query, runID)
	r, err := scanRunRecord(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get run record by id: %w", err)
	}
	return r, nil
}

// List retrieves the most recent runs, newest first. limit <= 0 means no limit.
func (s *RunRecordStore) List(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	query := `
		SELECT run_id, created_at, parameters, summaries
		FROM run_records
		ORDER BY created_at DESC, run_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list run records: %w", err)
	}
	defer rows.Close()

	var records []*domain.RunRecord
	for rows.Next() {
		r, err := scanRunRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run record row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run record rows: %w", err)
	}
	return records, nil
}

// scanRunRecord scans a single row into a RunRecord.
func scanRunRecord(row pgx.Row) (*domain.RunRecord, error) {
	var (
		r         domain.RunRecord
		createdAt time.Time
		params    []byte
		summaries []byte
	)

	if err := row.Scan(&r.RunID, &createdAt, &params, &summaries); err != nil {
		return nil, err
	}
	r.CreatedAt = createdAt.UTC()

	if err := json.Unmarshal(params, &r.Parameters); err != nil {
		return nil, fmt.Errorf("unmarshal run parameters: %w", err)
	}
	if err := json.Unmarshal(summaries, &r.Summaries); err != nil {
		return nil, fmt.Errorf("unmarshal run summaries: %w", err)
	}
	return &r, nil
}
