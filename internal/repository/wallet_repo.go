// internal/repository/wallet_repo.go
package repository

import (
	"context"
	"time"

	"susu-ledger/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// Get retrieves a wallet by customer id. Returns a NotFound error if
	// no wallet exists yet (wallets are created lazily).
	Get(ctx context.Context, q DBExecutor, customerID string) (*domain.Wallet, error)
	// Create inserts a new wallet row.
	Create(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// SetBalance overwrites the balance of an existing wallet.
	SetBalance(ctx context.Context, q DBExecutor, customerID string, balanceCents int64, updatedAt time.Time) error
}
