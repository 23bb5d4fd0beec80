package prescriptions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// SQLiteRepository stores prescriptions in the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLiteRepository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p Prescription) (Prescription, error) {
	p.ID = uuid.NewString()
	const query = `INSERT INTO prescriptions (id, date, doctor, patient, medicine, notes)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Date, p.Doctor, p.Patient, p.Medicine, p.Notes); err != nil {
		return Prescription{}, fmt.Errorf("prescriptions: create: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("prescriptions: delete: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Prescription, error) {
	const query = `SELECT id, date, doctor, patient, medicine, notes
		FROM prescriptions ORDER BY date DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prescriptions: list: %w", err)
	}
	defer rows.Close()

	items := make([]Prescription, 0)
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.Date, &p.Doctor, &p.Patient, &p.Medicine, &p.Notes); err != nil {
			return nil, fmt.Errorf("prescriptions: scan: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions`); err != nil {
		return fmt.Errorf("prescriptions: clear: %w", err)
	}
	return nil
}
