package triage

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRepoMem_UpdateMissingIsNoOp(t *testing.T) {
	repo := NewEntryRepoMem()
	ctx := context.Background()

	ghost := &SymptomEntry{ID: uuid.New(), PatientName: "ghost"}
	if err := repo.Update(ctx, ghost); err != nil {
		t.Fatalf("update of missing id must be a no-op, got %v", err)
	}
	if _, total, _ := repo.List(ctx, 10, 0); total != 0 {
		t.Errorf("no-op update must insert nothing, total=%d", total)
	}
}

func TestRepoMem_UpdatePreservesFlagsAndIdentity(t *testing.T) {
	repo := NewEntryRepoMem()
	ctx := context.Background()

	e := &SymptomEntry{PatientName: "Jane", Symptoms: "fever"}
	if err := repo.Add(ctx, e); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.SyncAllPending(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if err := repo.MarkDoctorNotified(ctx, e.ID); err != nil {
		t.Fatalf("mark notified: %v", err)
	}

	// An update carrying false flags must not revert them.
	upd := &SymptomEntry{ID: e.ID, PatientName: "Jane Doe", Symptoms: "fever and chills"}
	if err := repo.Update(ctx, upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PatientName != "Jane Doe" {
		t.Errorf("update did not apply, name=%q", got.PatientName)
	}
	if !got.IsSynced {
		t.Error("is_synced reverted by update")
	}
	if !got.DoctorNotified {
		t.Error("doctor_notified reverted by update")
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Error("created_at changed by update")
	}
}

func TestRepoMem_RemoveAndNotFound(t *testing.T) {
	repo := NewEntryRepoMem()
	ctx := context.Background()

	e := &SymptomEntry{PatientName: "Jane", Symptoms: "cough"}
	if err := repo.Add(ctx, e); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Remove(ctx, e.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, e.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, e.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepoMem_ListInsertionOrder(t *testing.T) {
	repo := NewEntryRepoMem()
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, n := range names {
		if err := repo.Add(ctx, &SymptomEntry{PatientName: n, Symptoms: "x"}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	entries, total, err := repo.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	for i, n := range names {
		if entries[i].PatientName != n {
			t.Errorf("position %d: expected %q, got %q", i, n, entries[i].PatientName)
		}
	}

	page, _, err := repo.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].PatientName != "second" {
		t.Errorf("unexpected page %v", page)
	}
}

func TestRepoMem_MarkDoctorNotifiedMissingIsNoOp(t *testing.T) {
	repo := NewEntryRepoMem()
	if err := repo.MarkDoctorNotified(context.Background(), uuid.New()); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}
