// internal/repository/idempotency_repo.go
package repository

import (
	"context"
	"time"

	"susu-ledger/internal/ref"
)

// IdempotencyRepository defines the interface for idempotency markers.
// A marker's existence means the logical call it guards has already
// completed. Markers are checked and set inside the same transaction as
// the effect they guard.
type IdempotencyRepository interface {
	// Exists reports whether a marker is present for the scope.
	Exists(ctx context.Context, q DBExecutor, scope ref.IdempotencyScope) (bool, error)
	// Put records a marker, optionally tagged with the request it guarded.
	Put(ctx context.Context, q DBExecutor, scope ref.IdempotencyScope, requestID string, createdAt time.Time) error
}
