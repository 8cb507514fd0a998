package triage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// entryRepoMem is the in-memory EntryRepository used when no database is
// configured. Entries are kept in insertion order.
type entryRepoMem struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*SymptomEntry
	order   []uuid.UUID
}

// NewEntryRepoMem creates an empty in-memory entry repository.
func NewEntryRepoMem() EntryRepository {
	return &entryRepoMem{entries: make(map[uuid.UUID]*SymptomEntry)}
}

func (r *entryRepoMem) Add(_ context.Context, e *SymptomEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	stored := *e
	r.entries[e.ID] = &stored
	r.order = append(r.order, e.ID)
	return nil
}

func (r *entryRepoMem) Update(_ context.Context, e *SymptomEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.entries[e.ID]
	if !ok {
		return nil
	}

	stored := *e
	stored.ID = prev.ID
	stored.CreatedAt = prev.CreatedAt
	stored.IsSynced = prev.IsSynced || e.IsSynced
	stored.DoctorNotified = prev.DoctorNotified || e.DoctorNotified
	stored.UpdatedAt = time.Now().UTC()
	r.entries[e.ID] = &stored
	return nil
}

func (r *entryRepoMem) Remove(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *entryRepoMem) GetByID(_ context.Context, id uuid.UUID) (*SymptomEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *e
	return &out, nil
}

func (r *entryRepoMem) List(_ context.Context, limit, offset int) ([]*SymptomEntry, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	if offset >= total {
		return []*SymptomEntry{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}

	out := make([]*SymptomEntry, 0, end-offset)
	for _, id := range r.order[offset:end] {
		e := *r.entries[id]
		out = append(out, &e)
	}
	return out, total, nil
}

func (r *entryRepoMem) HasPending(_ context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if !e.IsSynced {
			return true, nil
		}
	}
	return false, nil
}

func (r *entryRepoMem) SyncAllPending(_ context.Context) ([]SyncOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var out []SyncOutcome
	for _, id := range r.order {
		e := r.entries[id]
		if e.IsSynced {
			continue
		}
		e.IsSynced = true
		e.UpdatedAt = now
		out = append(out, SyncOutcome{EntryID: id, Synced: true})
	}
	return out, nil
}

func (r *entryRepoMem) MarkDoctorNotified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	if !e.DoctorNotified {
		e.DoctorNotified = true
		e.UpdatedAt = time.Now().UTC()
	}
	return nil
}
