// pkg/db/transaction_engine.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/repository"
)

// maxTxAttempts is the optimistic-concurrency retry budget. A closure that
// keeps losing serialization conflicts past this many attempts surfaces an
// Aborted error to the caller.
const maxTxAttempts = 5

// DBTxBeginner defines the interface for beginning transactions.
// *sqlx.DB implements this.
type DBTxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// TxFunc is the body of one transaction attempt. It must issue all reads it
// needs before its first write, and must not retain the executor beyond the
// call: the whole closure may run again on a serialization conflict.
type TxFunc func(q repository.DBExecutor) error

// RunTxFunc is the signature services depend on so tests can substitute the
// engine.
type RunTxFunc func(ctx context.Context, beginner DBTxBeginner, fn TxFunc) error

// RunTx executes fn with ACID semantics: all reads observe one serializable
// snapshot and all writes commit atomically or not at all. On a
// serialization conflict the closure is re-run against a fresh snapshot, up
// to the retry budget; exhaustion surfaces an Aborted error. Any other
// error from fn rolls the attempt back and propagates unchanged.
func RunTx(ctx context.Context, beginner DBTxBeginner, fn TxFunc) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		lastErr = runTxOnce(ctx, beginner, fn)
		if lastErr == nil {
			return nil
		}
		if !isSerializationFailure(lastErr) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}
	return apperr.Newf(apperr.Aborted, "transaction aborted after %d attempts: %v", maxTxAttempts, lastErr)
}

func runTxOnce(ctx context.Context, beginner DBTxBeginner, fn TxFunc) error {
	tx, err := beginner.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isSerializationFailure reports whether err is a PostgreSQL serialization
// failure (40001) or deadlock (40P01), both of which are safe to retry.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
