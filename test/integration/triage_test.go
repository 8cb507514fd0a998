package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/waspito/telehealth/internal/domain/triage"
)

func TestSymptomEntryCRUD(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)
	repo := triage.NewEntryRepoPG(globalDB.Pool)

	entry := newTestEntry("Alice Doe", "I have a fever", "Fever / Possible Infection")
	if err := repo.Add(ctx, entry); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set by insert")
	}

	got, err := repo.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PatientName != "Alice Doe" || got.IsSynced {
		t.Fatalf("unexpected entry: %+v", got)
	}

	got.Symptoms = "fever and chills"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Symptoms != "fever and chills" {
		t.Fatalf("update not persisted: %q", got.Symptoms)
	}

	if err := repo.Remove(ctx, entry.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := repo.GetByID(ctx, entry.ID); !errors.Is(err, triage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if err := repo.Remove(ctx, entry.ID); !errors.Is(err, triage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing twice, got %v", err)
	}
}

func TestSymptomEntryFlagsNeverRevert(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)
	repo := triage.NewEntryRepoPG(globalDB.Pool)

	entry := newTestEntry("Bob", "bad cough", "Common Cough")
	if err := repo.Add(ctx, entry); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := repo.MarkDoctorNotified(ctx, entry.ID); err != nil {
		t.Fatalf("MarkDoctorNotified: %v", err)
	}
	outcomes, err := repo.SyncAllPending(ctx)
	if err != nil {
		t.Fatalf("SyncAllPending: %v", err)
	}
	if len(outcomes) != 1 || !outcomes[0].Synced {
		t.Fatalf("unexpected sync outcomes: %+v", outcomes)
	}

	// An update carrying cleared flags must not revert them.
	stale := newTestEntry("Bob", "bad cough", "Common Cough")
	stale.ID = entry.ID
	stale.IsSynced = false
	stale.DoctorNotified = false
	if err := repo.Update(ctx, stale); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsSynced || !got.DoctorNotified {
		t.Fatalf("flags reverted: synced=%v notified=%v", got.IsSynced, got.DoctorNotified)
	}
}

func TestSyncAllPendingIdempotent(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)
	repo := triage.NewEntryRepoPG(globalDB.Pool)

	for i := 0; i < 3; i++ {
		if err := repo.Add(ctx, newTestEntry("Carol", "headache", "Mild Headache")); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	pending, err := repo.HasPending(ctx)
	if err != nil || !pending {
		t.Fatalf("HasPending = %v, %v; want true", pending, err)
	}

	outcomes, err := repo.SyncAllPending(ctx)
	if err != nil {
		t.Fatalf("SyncAllPending: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("synced %d entries, want 3", len(outcomes))
	}

	outcomes, err = repo.SyncAllPending(ctx)
	if err != nil {
		t.Fatalf("second SyncAllPending: %v", err)
	}
	if len(outcomes) != 0 {
		t.Fatalf("second run synced %d entries, want 0", len(outcomes))
	}
	pending, err = repo.HasPending(ctx)
	if err != nil || pending {
		t.Fatalf("HasPending = %v, %v; want false", pending, err)
	}
}

func TestSymptomEntryListOrder(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)
	repo := triage.NewEntryRepoPG(globalDB.Pool)

	names := []string{"first", "second", "third", "fourth"}
	for _, n := range names {
		if err := repo.Add(ctx, newTestEntry(n, "cold", "Common Cold")); err != nil {
			t.Fatalf("Add %s: %v", n, err)
		}
	}

	entries, total, err := repo.List(ctx, 2, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	if len(entries) != 2 || entries[0].PatientName != "second" || entries[1].PatientName != "third" {
		t.Fatalf("unexpected page: %+v", entries)
	}
}

func TestMarkDoctorNotifiedMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	truncateTables(t, ctx)
	repo := triage.NewEntryRepoPG(globalDB.Pool)

	if err := repo.MarkDoctorNotified(ctx, uuid.New()); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
