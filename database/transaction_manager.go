package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const DefaultTxTimeout = 10 * time.Second

// TransactionOptions configures transaction behavior.
type TransactionOptions struct {
	IsolationLevel sql.IsolationLevel
	Timeout        time.Duration
}

// StandardTransactionOptions returns default transaction options.
func StandardTransactionOptions() *TransactionOptions {
	return &TransactionOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        DefaultTxTimeout,
	}
}

// TxFunc runs inside a transaction; the bun.IDB it receives is the
// transaction handle.
type TxFunc func(ctx context.Context, tx bun.IDB) error

// TxRunner executes a function transactionally. The check-in service
// depends on this interface so its multi-row mutation commits atomically;
// tests substitute a pass-through implementation.
type TxRunner interface {
	WithTransaction(ctx context.Context, opts *TransactionOptions, fn TxFunc) error
}

// TransactionManager is the Postgres-backed TxRunner.
type TransactionManager struct {
	db *bun.DB
}

func NewTransactionManager(db *bun.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithTransaction executes fn within a database transaction, rolling back
// on error and committing on success.
func (tm *TransactionManager) WithTransaction(ctx context.Context, opts *TransactionOptions, fn TxFunc) error {
	if opts == nil {
		opts = StandardTransactionOptions()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tx, err := tm.db.BeginTx(timeoutCtx, &sql.TxOptions{
		Isolation: opts.IsolationLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(timeoutCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// NopTxRunner runs the function without a surrounding transaction. Used by
// the in-memory storage backend, whose repositories mutate under their own
// locks.
type NopTxRunner struct{}

func (NopTxRunner) WithTransaction(ctx context.Context, _ *TransactionOptions, fn TxFunc) error {
	return fn(ctx, nil)
}
