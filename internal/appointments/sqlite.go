package appointments

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// SQLiteRepository stores appointments in the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLiteRepository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a Appointment) (Appointment, error) {
	a.ID = uuid.NewString()
	const query = `INSERT INTO appointments
		(id, date, time, patient, doctor, reason, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Date, a.Time, a.Patient, a.Doctor, a.Reason, string(a.Status), a.Notes)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: create: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Appointment, error) {
	const query = `SELECT id, date, time, patient, doctor, reason, status, notes
		FROM appointments ORDER BY date DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
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

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM appointments`); err != nil {
		return fmt.Errorf("appointments: clear: %w", err)
	}
	return nil
}
