// internal/service/reads.go
package service

import (
	"context"
	"fmt"

	"susu-ledger/internal/domain"
)

// GetWallet returns the current wallet snapshot for a customer. Customers
// may read only their own wallet; admins any. Served from the balance cache
// when warm.
func (s *ledgerService) GetWallet(ctx context.Context, callerUID, customerID string) (*domain.Wallet, error) {
	if err := s.canReadCustomer(ctx, callerUID, customerID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if wallet, ok := s.cache.Get(ctx, customerID); ok {
			return wallet, nil
		}
	}

	wallet, err := s.wallets.Get(ctx, s.dbExecutor, customerID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, wallet)
	}
	return wallet, nil
}

// ListLedger returns a newest-first page of ledger entries for a customer
// together with the total count. Same ownership rule as GetWallet.
func (s *ledgerService) ListLedger(ctx context.Context, callerUID, customerID string, limit, offset int) ([]domain.LedgerEntry, int64, error) {
	if err := s.canReadCustomer(ctx, callerUID, customerID); err != nil {
		return nil, 0, err
	}

	entries, total, err := s.ledger.ListByCustomer(ctx, s.dbExecutor, customerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger: %w", err)
	}
	return entries, total, nil
}

// ListWithdrawRequests returns the review queue, optionally filtered by
// status. Admin-only.
func (s *ledgerService) ListWithdrawRequests(ctx context.Context, callerUID string, status *domain.WithdrawStatus, limit, offset int) ([]domain.WithdrawRequest, int64, error) {
	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, 0, err
	}

	requests, total, err := s.withdrawals.List(ctx, s.dbExecutor, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list withdraw requests: %w", err)
	}
	return requests, total, nil
}
