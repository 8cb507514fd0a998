package directory

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

type doctorRepoPG struct{ pool *pgxpool.Pool }

// NewDoctorRepoPG creates the Postgres-backed DoctorRepository.
func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn() queryable { return r.pool }

const doctorCols = `id, name, phone, hospital_name, city, is_online, specialties,
	latitude, longitude, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.HospitalName, &d.City, &d.IsOnline,
		&d.Specialties, &d.Coordinate.Latitude, &d.Coordinate.Longitude,
		&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *doctorRepoPG) Add(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.conn().QueryRow(ctx, `
		INSERT INTO doctor (id, name, phone, hospital_name, city, is_online,
			specialties, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Phone, d.HospitalName, d.City, d.IsOnline,
		d.Specialties, d.Coordinate.Latitude, d.Coordinate.Longitude).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn().Exec(ctx, `
		UPDATE doctor SET name=$2, phone=$3, hospital_name=$4, city=$5,
			is_online=$6, specialties=$7, latitude=$8, longitude=$9, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Phone, d.HospitalName, d.City, d.IsOnline,
		d.Specialties, d.Coordinate.Latitude, d.Coordinate.Longitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *doctorRepoPG) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn().Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn().QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) ListAll(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn().Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *doctorRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn().QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&n)
	return n, err
}

func (r *doctorRepoPG) SetOnline(ctx context.Context, ids []uuid.UUID) error {
	if ids == nil {
		ids = []uuid.UUID{} // a nil slice would encode as a NULL array
	}
	// One statement: the whole roster flips in a single snapshot.
	_, err := r.conn().Exec(ctx, `
		UPDATE doctor SET is_online = (id = ANY($1)), updated_at = NOW()
		WHERE is_online IS DISTINCT FROM (id = ANY($1))`, ids)
	return err
}
