// internal/repository/postgres/wallet_pg.go
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

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// Get retrieves a wallet by customer id using the provided DBExecutor.
func (r *WalletRepository) Get(ctx context.Context, q repository.DBExecutor, customerID string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT customer_id, balance_cents, updated_at FROM wallets WHERE customer_id = $1`
	err := q.GetContext(ctx, &wallet, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "wallet for customer %s not found", customerID)
		}
		return nil, fmt.Errorf("failed to get wallet for customer %s: %w", customerID, err)
	}
	return &wallet, nil
}

// Create inserts a new wallet row using the provided DBExecutor.
func (r *WalletRepository) Create(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (customer_id, balance_cents, updated_at) VALUES ($1, $2, $3)`
	if _, err := q.ExecContext(ctx, query, wallet.CustomerID, wallet.BalanceCents, wallet.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create wallet for customer %s: %w", wallet.CustomerID, err)
	}
	return nil
}

// SetBalance overwrites the balance of an existing wallet using the provided DBExecutor.
func (r *WalletRepository) SetBalance(ctx context.Context, q repository.DBExecutor, customerID string, balanceCents int64, updatedAt time.Time) error {
	query := `UPDATE wallets SET balance_cents = $1, updated_at = $2 WHERE customer_id = $3`
	result, err := q.ExecContext(ctx, query, balanceCents, updatedAt, customerID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for customer %s: %w", customerID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for wallet %s: %w", customerID, err)
	}
	if rowsAffected == 0 {
		return apperr.Newf(apperr.NotFound, "wallet for customer %s not found", customerID)
	}
	return nil
}
