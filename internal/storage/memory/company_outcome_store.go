package memory

import (
	"context"
	"sort"
	"sync"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage"
)

// CompanyOutcomeStore is an in-memory implementation of storage.CompanyOutcomeStore.
type CompanyOutcomeStore struct {
	mu   sync.RWMutex
	data []*domain.OutcomeRow
}

// NewCompanyOutcomeStore creates a new in-memory company outcome store.
func NewCompanyOutcomeStore() *CompanyOutcomeStore {
	return &CompanyOutcomeStore{}
}

// InsertBulk adds multiple outcome rows. Fails the entire batch on any invalid row.
func (s *CompanyOutcomeStore) InsertBulk(_ context.Context, rows []*domain.OutcomeRow) error {
	if len(rows) == 0 {
		return nil
	}

	for _, r := range rows {
		if r == nil || r.RunID == "" || r.ScenarioID == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		cp := *r
		s.data = append(s.data, &cp)
	}
	return nil
}

// GetByRunID retrieves all rows for a run, ordered by scenario then bucket
// then company index.
func (s *CompanyOutcomeStore) GetByRunID(_ context.Context, runID string) ([]*domain.OutcomeRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.OutcomeRow
	for _, r := range s.data {
		if r.RunID == runID {
			cp := *r
			result = append(result, &cp)
		}
	}

	sortOutcomeRows(result)
	return result, nil
}

// GetByRunScenario retrieves rows for one run/scenario combination.
func (s *CompanyOutcomeStore) GetByRunScenario(_ context.Context, runID, scenarioID string) ([]*domain.OutcomeRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.OutcomeRow
	for _, r := range s.data {
		if r.RunID == runID && r.ScenarioID == scenarioID {
			cp := *r
			result = append(result, &cp)
		}
	}

	sortOutcomeRows(result)
	return result, nil
}

func sortOutcomeRows(rows []*domain.OutcomeRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ScenarioID != rows[j].ScenarioID {
			return rows[i].ScenarioID < rows[j].ScenarioID
		}
		if rows[i].BucketKind != rows[j].BucketKind {
			return rows[i].BucketKind < rows[j].BucketKind
		}
		return rows[i].CompanyIndex < rows[j].CompanyIndex
	})
}

var _ storage.CompanyOutcomeStore = (*CompanyOutcomeStore)(nil)
