// internal/repository/withdraw_repo.go
package repository

import (
	"context"
	"time"

	"susu-ledger/internal/domain"
)

// WithdrawRequestRepository defines the interface for withdraw request
// operations.
type WithdrawRequestRepository interface {
	// Create inserts a new pending request.
	Create(ctx context.Context, q DBExecutor, req *domain.WithdrawRequest) error
	// Get retrieves a request by id. Returns a NotFound error if absent.
	Get(ctx context.Context, q DBExecutor, id string) (*domain.WithdrawRequest, error)
	// SetStatus moves a request into a terminal state and records the
	// reviewing admin.
	SetStatus(ctx context.Context, q DBExecutor, id string, status domain.WithdrawStatus, reviewedByUID string, updatedAt time.Time) error
	// List retrieves a newest-first page of requests, optionally filtered
	// by status, together with the total count.
	List(ctx context.Context, q DBExecutor, status *domain.WithdrawStatus, limit, offset int) ([]domain.WithdrawRequest, int64, error)
}
