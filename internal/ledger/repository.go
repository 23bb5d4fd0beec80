package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// Repository persists transactions. Create assigns identity; there is no
// update-in-place operation.
type Repository interface {
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Transaction, error)
	Clear(ctx context.Context) error
}

// PostgresRepository stores transactions in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	tx.ID = uuid.NewString()
	const query = `INSERT INTO transactions
		(id, date, type, amount, category, patient_name, patient_id, phone, payment, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		tx.ID, tx.Date, string(tx.Type), tx.Amount, tx.Category,
		tx.PatientName, tx.PatientID, tx.Phone, tx.Payment, tx.Notes)
	if err != nil {
		return Transaction{}, fmt.Errorf("ledger: create: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ledger: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Transaction, error) {
	const query = `SELECT id, date, type, amount, category, patient_name, patient_id, phone, payment, notes
		FROM transactions ORDER BY date DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	defer rows.Close()

	txs := make([]Transaction, 0)
	for rows.Next() {
		var tx Transaction
		var txType string
		if err := rows.Scan(&tx.ID, &tx.Date, &txType, &tx.Amount, &tx.Category,
			&tx.PatientName, &tx.PatientID, &tx.Phone, &tx.Payment, &tx.Notes); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		tx.Type = TransactionType(txType)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("ledger: clear: %w", err)
	}
	return nil
}
