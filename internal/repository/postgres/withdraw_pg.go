// internal/repository/postgres/withdraw_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/domain"
	"susu-ledger/internal/repository"
)

// WithdrawRequestRepository implements repository.WithdrawRequestRepository
// for PostgreSQL.
type WithdrawRequestRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewWithdrawRequestRepository creates a new WithdrawRequestRepository.
func NewWithdrawRequestRepository(db *sqlx.DB) repository.WithdrawRequestRepository {
	return &WithdrawRequestRepository{}
}

// Create inserts a new withdraw request using the provided DBExecutor.
func (r *WithdrawRequestRepository) Create(ctx context.Context, q repository.DBExecutor, req *domain.WithdrawRequest) error {
	query := `INSERT INTO withdraw_requests
              (id, customer_id, amount_cents, reason, status, requested_by_uid, reviewed_by_uid, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		req.ID,
		req.CustomerID,
		req.AmountCents,
		req.Reason,
		req.Status,
		req.RequestedByUID,
		req.ReviewedByUID,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create withdraw request %s: %w", req.ID, err)
	}
	return nil
}

// Get retrieves a withdraw request by id using the provided DBExecutor.
func (r *WithdrawRequestRepository) Get(ctx context.Context, q repository.DBExecutor, id string) (*domain.WithdrawRequest, error) {
	var req domain.WithdrawRequest
	query := `SELECT id, customer_id, amount_cents, reason, status, requested_by_uid, reviewed_by_uid, created_at, updated_at
              FROM withdraw_requests WHERE id = $1`
	err := q.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "withdraw request not found")
		}
		return nil, fmt.Errorf("failed to get withdraw request %s: %w", id, err)
	}
	return &req, nil
}

// SetStatus moves a request into a terminal state using the provided DBExecutor.
func (r *WithdrawRequestRepository) SetStatus(ctx context.Context, q repository.DBExecutor, id string, status domain.WithdrawStatus, reviewedByUID string, updatedAt time.Time) error {
	query := `UPDATE withdraw_requests SET status = $1, reviewed_by_uid = $2, updated_at = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, status, reviewedByUID, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update withdraw request %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for withdraw request %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return apperr.New(apperr.NotFound, "withdraw request not found")
	}
	return nil
}

// List retrieves a paginated, newest-first list of withdraw requests,
// optionally filtered by status, together with the total count.
func (r *WithdrawRequestRepository) List(ctx context.Context, q repository.DBExecutor, status *domain.WithdrawStatus, limit, offset int) ([]domain.WithdrawRequest, int64, error) {
	requests := []domain.WithdrawRequest{}
	query := `
		SELECT id, customer_id, amount_cents, reason, status, requested_by_uid, reviewed_by_uid, created_at, updated_at
		FROM withdraw_requests
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &requests, query, status, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch withdraw requests: %w", err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM withdraw_requests WHERE ($1::text IS NULL OR status = $1)`
	if err := q.GetContext(ctx, &totalCount, countQuery, status); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdraw requests: %w", err)
	}

	return requests, totalCount, nil
}
