// internal/repository/ledger_repo.go
package repository

import (
	"context"

	"susu-ledger/internal/domain"
)

// LedgerRepository defines the interface for ledger entry operations.
// Entries are append-only; there is deliberately no update or delete.
type LedgerRepository interface {
	// Append inserts a new immutable ledger entry.
	Append(ctx context.Context, q DBExecutor, entry *domain.LedgerEntry) error
	// ListByCustomer retrieves a newest-first page of entries for a wallet
	// together with the total count.
	ListByCustomer(ctx context.Context, q DBExecutor, customerID string, limit, offset int) ([]domain.LedgerEntry, int64, error)
}
