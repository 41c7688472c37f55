package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage"
)

func sampleRun(id string, created time.Time) *domain.RunRecord {
	return &domain.RunRecord{
		RunID:      id,
		CreatedAt:  created,
		Parameters: domain.DefaultParameters(),
		Summaries: []domain.ScenarioSummary{
			{ScenarioID: domain.ScenarioBase, GrossMOIC: 3.1, NetMOIC: 2.4},
		},
	}
}

func TestRunRecordStore_InsertAndGet(t *testing.T) {
	store := NewRunRecordStore()
	ctx := context.Background()

	run := sampleRun("run1", time.Unix(1000, 0))
	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "run1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Summaries[0].GrossMOIC != 3.1 {
		t.Errorf("GrossMOIC mismatch: got %f, want 3.1", got.Summaries[0].GrossMOIC)
	}
	if got.Parameters.FundSize != 50.0 {
		t.Errorf("FundSize mismatch: got %f, want 50", got.Parameters.FundSize)
	}
}

func TestRunRecordStore_DuplicateKey(t *testing.T) {
	store := NewRunRecordStore()
	ctx := context.Background()

	run := sampleRun("run1", time.Unix(1000, 0))
	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, run)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestRunRecordStore_InvalidInput(t *testing.T) {
	store := NewRunRecordStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Insert(ctx, &domain.RunRecord{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty run_id, got %v", err)
	}
}

func TestRunRecordStore_NotFound(t *testing.T) {
	store := NewRunRecordStore()

	_, err := store.GetByID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRunRecordStore_ListNewestFirst(t *testing.T) {
	store := NewRunRecordStore()
	ctx := context.Background()

	for i, id := range []string{"run1", "run2", "run3"} {
		run := sampleRun(id, time.Unix(int64(1000+i), 0))
		if err := store.Insert(ctx, run); err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(runs))
	}
	if runs[0].RunID != "run3" || runs[2].RunID != "run1" {
		t.Errorf("List order wrong: %s, %s, %s", runs[0].RunID, runs[1].RunID, runs[2].RunID)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d runs, want 2", len(limited))
	}
}

func TestRunRecordStore_CopyOnRead(t *testing.T) {
	store := NewRunRecordStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRun("run1", time.Unix(1000, 0))); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "run1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	got.Summaries[0].GrossMOIC = 99.0

	again, err := store.GetByID(ctx, "run1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if again.Summaries[0].GrossMOIC != 3.1 {
		t.Errorf("stored record was mutated through a returned copy")
	}
}
