// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"susu-ledger/internal/domain"
	"susu-ledger/internal/repository"
)

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
type LedgerRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sqlx.DB) repository.LedgerRepository {
	return &LedgerRepository{}
}

// Append inserts a new ledger entry using the provided DBExecutor.
func (r *LedgerRepository) Append(ctx context.Context, q repository.DBExecutor, entry *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries
              (id, customer_id, type, direction, amount_cents, balance_after_cents, tx_date, tx_day, created_at, created_by_uid, meta)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.CustomerID,
		entry.Type,
		entry.Direction,
		entry.AmountCents,
		entry.BalanceAfterCents,
		entry.TxDate,
		entry.TxDay,
		entry.CreatedAt,
		entry.CreatedByUID,
		entry.Meta,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry %s: %w", entry.ID, err)
	}
	return nil
}

// ListByCustomer retrieves a paginated, newest-first list of ledger entries
// for a wallet together with the total count.
func (r *LedgerRepository) ListByCustomer(ctx context.Context, q repository.DBExecutor, customerID string, limit, offset int) ([]domain.LedgerEntry, int64, error) {
	entries := []domain.LedgerEntry{}
	query := `
		SELECT id, customer_id, type, direction, amount_cents, balance_after_cents, tx_date, tx_day, created_at, created_by_uid, meta
		FROM ledger_entries
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &entries, query, customerID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ledger entries for customer %s: %w", customerID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM ledger_entries WHERE customer_id = $1`
	if err := q.GetContext(ctx, &totalCount, countQuery, customerID); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries for customer %s: %w", customerID, err)
	}

	return entries, totalCount, nil
}
