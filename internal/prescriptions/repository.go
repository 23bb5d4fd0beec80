package prescriptions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// Repository persists prescriptions.
type Repository interface {
	Create(ctx context.Context, p Prescription) (Prescription, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Prescription, error)
	Clear(ctx context.Context) error
}

// PostgresRepository stores prescriptions in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, p Prescription) (Prescription, error) {
	p.ID = uuid.NewString()
	const query = `INSERT INTO prescriptions (id, date, doctor, patient, medicine, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.pool.Exec(ctx, query, p.ID, p.Date, p.Doctor, p.Patient, p.Medicine, p.Notes); err != nil {
		return Prescription{}, fmt.Errorf("prescriptions: create: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("prescriptions: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Prescription, error) {
	const query = `SELECT id, date, doctor, patient, medicine, notes
		FROM prescriptions ORDER BY date DESC, id`
	rows, err := r.pool.Query(ctx, query)
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

func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM prescriptions`); err != nil {
		return fmt.Errorf("prescriptions: clear: %w", err)
	}
	return nil
}
