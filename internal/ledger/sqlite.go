package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// SQLiteRepository stores transactions in the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLiteRepository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	tx.ID = uuid.NewString()
	const query = `INSERT INTO transactions
		(id, date, type, amount, category, patient_name, patient_id, phone, payment, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.Date, string(tx.Type), tx.Amount, tx.Category,
		tx.PatientName, tx.PatientID, tx.Phone, tx.Payment, tx.Notes)
	if err != nil {
		return Transaction{}, fmt.Errorf("ledger: create: %w", err)
	}
	return tx, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ledger: delete: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Transaction, error) {
	const query = `SELECT id, date, type, amount, category, patient_name, patient_id, phone, payment, notes
		FROM transactions ORDER BY date DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
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

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("ledger: clear: %w", err)
	}
	return nil
}
