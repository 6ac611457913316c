package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txContextKey struct{}

// maxTxAttempts bounds the automatic retries of a serializable transaction
// that fails with a write-conflict. Concurrent counter allocations serialize
// through these retries.
const maxTxAttempts = 5

// TxRunner implements database.Transactor over a serializable pgx
// transaction, re-running the whole body when it loses to a concurrent
// writer: a serialization failure (SQLSTATE 40001), a deadlock (40P01), or a
// unique violation (23505). The last one covers two allocators formatting
// the same doc_no from the same counter read; the loser hits the unique
// index and must re-read the advanced counter. The body must therefore be
// pure given its reads - it only talks to the store through the ctx querier.
type TxRunner struct {
	db *database.DB
}

func NewTxRunner(db *database.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := runOnce(ctx, r.db, fn)
		if err == nil {
			return nil
		}
		if !isRetryableConflict(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("transaction retries exhausted: %w", lastErr)
}

func runOnce(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, txContextKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "23505":
		return true
	}
	return false
}

// GetQuerier returns the transaction bound to ctx, or the pool.
// Repositories call this so the same method works inside and outside a
// transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
