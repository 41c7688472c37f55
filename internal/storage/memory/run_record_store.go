package memory

import (
	"context"
	"sort"
	"sync"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage"
)

// RunRecordStore is an in-memory implementation of storage.RunRecordStore.
type RunRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RunRecord // keyed by run_id
}

// NewRunRecordStore creates a new in-memory run record store.
func NewRunRecordStore() *RunRecordStore {
	return &RunRecordStore{
		data: make(map[string]*domain.RunRecord),
	}
}

// Insert adds a new run record. Returns ErrDuplicateKey if run_id exists.
func (s *RunRecordStore) Insert(_ context.Context, r *domain.RunRecord) error {
	if r == nil || r.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[r.RunID] = copyRunRecord(r)
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunRecordStore) GetByID(_ context.Context, runID string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return copyRunRecord(r), nil
}

// List retrieves the most recent runs, newest first. limit <= 0 means no limit.
func (s *RunRecordStore) List(_ context.Context, limit int) ([]*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RunRecord, 0, len(s.data))
	for _, r := range s.data {
		result = append(result, copyRunRecord(r))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].RunID > result[j].RunID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// copyRunRecord deep-copies a record so callers cannot mutate stored state.
func copyRunRecord(r *domain.RunRecord) *domain.RunRecord {
	cp := *r
	cp.Summaries = make([]domain.ScenarioSummary, len(r.Summaries))
	copy(cp.Summaries, r.Summaries)
	cp.Parameters.Buckets = make([]domain.StrategyBucket, len(r.Parameters.Buckets))
	copy(cp.Parameters.Buckets, r.Parameters.Buckets)
	return &cp
}

var _ storage.RunRecordStore = (*RunRecordStore)(nil)
