package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarity-clinic/clarity/internal/app"
	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/platform/db"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
)

// Backend bundles the repositories for the configured storage engine and
// owns the underlying connection.
type Backend struct {
	Repos Repositories

	pool *pgxpool.Pool
	sqld *sql.DB
}

// OpenBackend opens the storage engine named by cfg.StoreBackend and
// returns repositories bound to it.
func OpenBackend(ctx context.Context, cfg app.Config) (*Backend, error) {
	switch cfg.StoreBackend {
	case app.BackendPostgres:
		pool, err := db.NewPostgres(ctx, cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("store: open postgres: %w", err)
		}
		return &Backend{
			Repos: Repositories{
				Transactions:  ledger.NewPostgresRepository(pool),
				Prescriptions: prescriptions.NewPostgresRepository(pool),
				Inventory:     inventory.NewPostgresRepository(pool),
				Appointments:  appointments.NewPostgresRepository(pool),
			},
			pool: pool,
		}, nil
	case app.BackendSQLite:
		sqld, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("store: open sqlite: %w", err)
		}
		return &Backend{
			Repos: Repositories{
				Transactions:  ledger.NewSQLiteRepository(sqld),
				Prescriptions: prescriptions.NewSQLiteRepository(sqld),
				Inventory:     inventory.NewSQLiteRepository(sqld),
				Appointments:  appointments.NewSQLiteRepository(sqld),
			},
			sqld: sqld,
		}, nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.StoreBackend)
	}
}

// Close releases the underlying connection.
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.sqld != nil {
		_ = b.sqld.Close()
	}
}
