package directory

import (
	"context"

	"github.com/google/uuid"
)

// DoctorRepository stores doctor records in stable insertion order.
type DoctorRepository interface {
	Add(ctx context.Context, d *Doctor) error
	// Update replaces the stored doctor with the same id. A missing id
	// returns ErrNotFound.
	Update(ctx context.Context, d *Doctor) error
	Remove(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	// ListAll returns every doctor in insertion order.
	ListAll(ctx context.Context) ([]*Doctor, error)
	Count(ctx context.Context) (int, error)
	// SetOnline marks exactly the given doctors online and every other
	// doctor offline, as one atomic batch.
	SetOnline(ctx context.Context, ids []uuid.UUID) error
}
