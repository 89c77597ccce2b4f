// Package postgres implements store.Store on a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seminarhub/backend/internal/store"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// DB implements store.Store against PostgreSQL.
type DB struct {
	pool *pgxpool.Pool
	q    querier
}

var _ store.Store = (*DB)(nil)

// New creates a postgres-backed store.
func New(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool, q: pool}
}

// InTx runs fn against a transaction-scoped store. Nested calls reuse the
// surrounding transaction.
func (d *DB) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if d.pool == nil {
		return fn(d)
	}
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&DB{q: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// noRows reports whether err is the pgx no-rows sentinel, which the store
// contract surfaces as (nil, nil).
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
