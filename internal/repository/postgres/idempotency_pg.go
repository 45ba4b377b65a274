// internal/repository/postgres/idempotency_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"susu-ledger/internal/ref"
	"susu-ledger/internal/repository"
)

// IdempotencyRepository implements repository.IdempotencyRepository for
// PostgreSQL.
type IdempotencyRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(db *sqlx.DB) repository.IdempotencyRepository {
	return &IdempotencyRepository{}
}

// Exists reports whether a marker is present for the scope using the
// provided DBExecutor.
func (r *IdempotencyRepository) Exists(ctx context.Context, q repository.DBExecutor, scope ref.IdempotencyScope) (bool, error) {
	var one int
	query := `SELECT 1 FROM idempotency_keys WHERE caller_uid = $1 AND key = $2`
	err := q.GetContext(ctx, &one, query, scope.CallerUID, scope.Key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return true, nil
}

// Put records a marker for the scope using the provided DBExecutor.
func (r *IdempotencyRepository) Put(ctx context.Context, q repository.DBExecutor, scope ref.IdempotencyScope, requestID string, createdAt time.Time) error {
	var reqID *string
	if requestID != "" {
		reqID = &requestID
	}
	query := `INSERT INTO idempotency_keys (caller_uid, key, request_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := q.ExecContext(ctx, query, scope.CallerUID, scope.Key, reqID, createdAt); err != nil {
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}
