package triage

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository stores symptom entries. Implementations must preserve
// insertion order for listing and never revert the is_synced or
// doctor_notified flags once set.
type EntryRepository interface {
	Add(ctx context.Context, e *SymptomEntry) error
	// Update replaces the stored entry with the same id. A missing id is a
	// no-op. ID and CreatedAt are preserved from the stored entry.
	Update(ctx context.Context, e *SymptomEntry) error
	Remove(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*SymptomEntry, error)
	List(ctx context.Context, limit, offset int) ([]*SymptomEntry, int, error)
	HasPending(ctx context.Context) (bool, error)
	// SyncAllPending flips every unsynced entry to synced and reports the
	// per-entry outcome. Idempotent: a second run flips nothing.
	SyncAllPending(ctx context.Context) ([]SyncOutcome, error)
	// MarkDoctorNotified sets doctor_notified on the entry. A missing id is
	// a no-op.
	MarkDoctorNotified(ctx context.Context, id uuid.UUID) error
}
