package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// Repository persists inventory items.
type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Item, error)
	Clear(ctx context.Context) error
}

// PostgresRepository stores inventory in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, item Item) (Item, error) {
	item.ID = uuid.NewString()
	const query = `INSERT INTO inventory (id, name, batch, expiry, quantity, price, supplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Batch, item.Expiry, item.Quantity, nullablePrice(item.Price), item.Supplier)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Item{}, fmt.Errorf("inventory: batch %q of %q: %w", item.Batch, item.Name, shared.ErrDuplicate)
		}
		return Item{}, fmt.Errorf("inventory: create: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("inventory: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Item, error) {
	const query = `SELECT id, name, batch, expiry, quantity, price, supplier
		FROM inventory ORDER BY name ASC, id`
	rows, err := r.pool.Query(ctx, query)
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

func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("inventory: clear: %w", err)
	}
	return nil
}

func nullablePrice(price float64) any {
	if price <= 0 {
		return nil
	}
	return price
}
