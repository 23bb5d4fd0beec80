package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// SQLiteRepository stores inventory in the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLiteRepository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, item Item) (Item, error) {
	item.ID = uuid.NewString()
	const query = `INSERT INTO inventory (id, name, batch, expiry, quantity, price, supplier)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Batch, item.Expiry, item.Quantity, nullablePrice(item.Price), item.Supplier)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return Item{}, fmt.Errorf("inventory: batch %q of %q: %w", item.Batch, item.Name, shared.ErrDuplicate)
		}
		return Item{}, fmt.Errorf("inventory: create: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("inventory: delete: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Item, error) {
	const query = `SELECT id, name, batch, expiry, quantity, price, supplier
		FROM inventory ORDER BY name ASC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventory: list: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		var price sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &item.Batch, &item.Expiry,
			&item.Quantity, &price, &item.Supplier); err != nil {
			return nil, fmt.Errorf("inventory: scan: %w", err)
		}
		if price.Valid {
			item.Price = price.Float64
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("inventory: clear: %w", err)
	}
	return nil
}
