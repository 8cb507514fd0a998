package directory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// doctorRepoMem is the in-memory DoctorRepository used when no database is
// configured.
type doctorRepoMem struct {
	mu      sync.RWMutex
	doctors map[uuid.UUID]*Doctor
	order   []uuid.UUID
}

// NewDoctorRepoMem creates an empty in-memory doctor repository.
func NewDoctorRepoMem() DoctorRepository {
	return &doctorRepoMem{doctors: make(map[uuid.UUID]*Doctor)}
}

func (r *doctorRepoMem) Add(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	stored := *d
	r.doctors[d.ID] = &stored
	r.order = append(r.order, d.ID)
	return nil
}

func (r *doctorRepoMem) Update(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.doctors[d.ID]
	if !ok {
		return ErrNotFound
	}

	stored := *d
	stored.ID = prev.ID
	stored.CreatedAt = prev.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.doctors[d.ID] = &stored
	return nil
}

func (r *doctorRepoMem) Remove(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doctors[id]; !ok {
		return ErrNotFound
	}
	delete(r.doctors, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *doctorRepoMem) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *d
	return &out, nil
}

func (r *doctorRepoMem) ListAll(_ context.Context) ([]*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Doctor, 0, len(r.order))
	for _, id := range r.order {
		d := *r.doctors[id]
		out = append(out, &d)
	}
	return out, nil
}

func (r *doctorRepoMem) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *doctorRepoMem) SetOnline(_ context.Context, ids []uuid.UUID) error {
	online := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		online[id] = struct{}{}
	}

	// Single write lock: readers never observe a half-applied batch.
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, d := range r.doctors {
		_, on := online[id]
		if d.IsOnline != on {
			d.IsOnline = on
			d.UpdatedAt = now
		}
	}
	return nil
}
