package appointments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// Repository persists appointments. Create assigns identity; there is no
// update-in-place operation.
type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Appointment, error)
	Clear(ctx context.Context) error
}

// PostgresRepository stores appointments in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, a Appointment) (Appointment, error) {
	a.ID = uuid.NewString()
	const query = `INSERT INTO appointments
		(id, date, time, patient, doctor, reason, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Date, a.Time, a.Patient, a.Doctor, a.Reason, string(a.Status), a.Notes)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: create: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Appointment, error) {
	const query = `SELECT id, date, time, patient, doctor, reason, status, notes
		FROM appointments ORDER BY date DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()

	appts := make([]Appointment, 0)
	for rows.Next() {
		var a Appointment
		var status string
		if err := rows.Scan(&a.ID, &a.Date, &a.Time, &a.Patient, &a.Doctor,
			&a.Reason, &status, &a.Notes); err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		a.Status = Status(status)
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM appointments`); err != nil {
		return fmt.Errorf("appointments: clear: %w", err)
	}
	return nil
}
