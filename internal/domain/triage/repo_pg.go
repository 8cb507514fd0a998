package triage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type entryRepoPG struct{ pool *pgxpool.Pool }

// NewEntryRepoPG creates the Postgres-backed EntryRepository.
func NewEntryRepoPG(pool *pgxpool.Pool) EntryRepository { return &entryRepoPG{pool: pool} }

func (r *entryRepoPG) conn() queryable { return r.pool }

const entryCols = `id, patient_name, phone, title, age, gender, symptoms, result,
	details, is_synced, is_healthy, doctor_notified, created_at, updated_at`

func scanEntry(row pgx.Row) (*SymptomEntry, error) {
	var e SymptomEntry
	err := row.Scan(&e.ID, &e.PatientName, &e.Phone, &e.Title, &e.Age, &e.Gender,
		&e.Symptoms, &e.Result, &e.Details, &e.IsSynced, &e.IsHealthy,
		&e.DoctorNotified, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &e, err
}

func (r *entryRepoPG) Add(ctx context.Context, e *SymptomEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.conn().QueryRow(ctx, `
		INSERT INTO symptom_entry (id, patient_name, phone, title, age, gender,
			symptoms, result, details, is_synced, is_healthy, doctor_notified)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		e.ID, e.PatientName, e.Phone, e.Title, e.Age, e.Gender,
		e.Symptoms, e.Result, e.Details, e.IsSynced, e.IsHealthy, e.DoctorNotified).
		Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *entryRepoPG) Update(ctx context.Context, e *SymptomEntry) error {
	// OR keeps is_synced and doctor_notified monotonic; a missing id
	// updates zero rows, which is the documented no-op.
	_, err := r.conn().Exec(ctx, `
		UPDATE symptom_entry SET patient_name=$2, phone=$3, title=$4, age=$5,
			gender=$6, symptoms=$7, result=$8, details=$9,
			is_synced = is_synced OR $10, is_healthy=$11,
			doctor_notified = doctor_notified OR $12, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.PatientName, e.Phone, e.Title, e.Age, e.Gender,
		e.Symptoms, e.Result, e.Details, e.IsSynced, e.IsHealthy, e.DoctorNotified)
	return err
}

func (r *entryRepoPG) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn().Exec(ctx, `DELETE FROM symptom_entry WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *entryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SymptomEntry, error) {
	return scanEntry(r.conn().QueryRow(ctx, `SELECT `+entryCols+` FROM symptom_entry WHERE id = $1`, id))
}

func (r *entryRepoPG) List(ctx context.Context, limit, offset int) ([]*SymptomEntry, int, error) {
	var total int
	if err := r.conn().QueryRow(ctx, `SELECT COUNT(*) FROM symptom_entry`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn().Query(ctx, `
		SELECT `+entryCols+` FROM symptom_entry
		ORDER BY created_at, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*SymptomEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *entryRepoPG) HasPending(ctx context.Context) (bool, error) {
	var pending bool
	err := r.conn().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM symptom_entry WHERE NOT is_synced)`).Scan(&pending)
	return pending, err
}

func (r *entryRepoPG) SyncAllPending(ctx context.Context) ([]SyncOutcome, error) {
	rows, err := r.conn().Query(ctx, `
		UPDATE symptom_entry SET is_synced = TRUE, updated_at = NOW()
		WHERE NOT is_synced
		RETURNING id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SyncOutcome
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, SyncOutcome{EntryID: id, Synced: true})
	}
	return out, rows.Err()
}

func (r *entryRepoPG) MarkDoctorNotified(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn().Exec(ctx, `
		UPDATE symptom_entry SET doctor_notified = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT doctor_notified`, id)
	return err
}
