// internal/service/withdraw.go
package service

import (
	"context"
	"time"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/domain"
	"susu-ledger/internal/ref"
	"susu-ledger/internal/repository"
	"susu-ledger/internal/validate"
)

// RequestWithdraw files a withdraw request for review. The caller is either
// the customer themself or an admin acting on behalf of an explicit
// customer id. The ledger entry written here records intent only; the
// wallet balance is untouched until approval.
func (s *ledgerService) RequestWithdraw(ctx context.Context, callerUID string, in WithdrawInput) (*WithdrawResult, error) {
	if err := requireAuth(callerUID); err != nil {
		return nil, err
	}
	if err := validate.Cents(in.AmountCents, "amountCents"); err != nil {
		return nil, err
	}
	reason, err := validate.NonEmptyString(in.Reason, "reason", 1, 500)
	if err != nil {
		return nil, err
	}

	customerID, adminActing, err := s.resolveActingCustomer(ctx, callerUID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	requestID := ref.NewWithdrawRequestID()
	now := time.Now().UTC()

	err = s.runTx(ctx, s.dbBeginner, func(q repository.DBExecutor) error {
		if adminActing {
			// The admin-supplied target must be a real customer record.
			if _, err := s.customers.Get(ctx, q, customerID); err != nil {
				if apperr.Is(err, apperr.NotFound) {
					return apperr.Newf(apperr.FailedPrecondition, "customer %s does not exist", customerID)
				}
				return err
			}
		}

		balance := int64(0)
		walletExists := true
		wallet, err := s.wallets.Get(ctx, q, customerID)
		if err != nil {
			if !apperr.Is(err, apperr.NotFound) {
				return err
			}
			walletExists = false
		} else {
			balance = wallet.BalanceCents
		}

		if !walletExists {
			// Ensure a wallet document exists so clients can watch it; no
			// balance change happens here.
			if err := s.wallets.Create(ctx, q, domain.NewWallet(customerID, now)); err != nil {
				return err
			}
		}

		req := domain.NewWithdrawRequest(requestID, customerID, in.AmountCents, reason, callerUID, now)
		if err := s.withdrawals.Create(ctx, q, req); err != nil {
			return err
		}

		entry := &domain.LedgerEntry{
			ID:                ref.NewLedgerEntryID(),
			CustomerID:        customerID,
			Type:              domain.EntryTypeWithdrawRequest,
			Direction:         domain.DirectionOut,
			AmountCents:       in.AmountCents,
			BalanceAfterCents: &balance,
			TxDate:            now,
			CreatedAt:         now,
			CreatedByUID:      callerUID,
			Meta:              domain.LedgerMeta{RequestID: requestID, Reason: reason},
		}
		return s.ledger.Append(ctx, q, entry)
	})
	if err != nil {
		return nil, err
	}

	return &WithdrawResult{RequestID: requestID}, nil
}

// ApproveWithdraw moves a pending request to APPROVED and debits the
// wallet. Admin-only, idempotent. A resulting negative balance is allowed
// only within the customer's credit limit (0 = unlimited).
func (s *ledgerService) ApproveWithdraw(ctx context.Context, callerUID string, in ApproveWithdrawInput) (*MutationResult, error) {
	requestID, err := validate.NonEmptyString(in.RequestID, "requestId", 1, 128)
	if err != nil {
		return nil, err
	}
	var idemKey string
	if in.IdempotencyKey != "" {
		idemKey, err = validate.NonEmptyString(in.IdempotencyKey, "idempotencyKey", 1, 128)
		if err != nil {
			return nil, err
		}
	}

	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	idempotent := false
	var debitedCustomerID string

	err = s.runTx(ctx, s.dbBeginner, func(q repository.DBExecutor) error {
		idempotent = false
		scope := ref.Idempotency(callerUID, idemKey)
		if idemKey != "" {
			exists, err := s.idempotency.Exists(ctx, q, scope)
			if err != nil {
				return err
			}
			if exists {
				idempotent = true
				return nil
			}
		}

		req, err := s.withdrawals.Get(ctx, q, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.WithdrawStatusPending {
			return apperr.New(apperr.FailedPrecondition, "request is not pending")
		}

		customer, err := s.customers.Get(ctx, q, req.CustomerID)
		if err != nil {
			return err
		}

		balance := int64(0)
		walletExists := true
		wallet, err := s.wallets.Get(ctx, q, req.CustomerID)
		if err != nil {
			if !apperr.Is(err, apperr.NotFound) {
				return err
			}
			walletExists = false
		} else {
			balance = wallet.BalanceCents
		}

		newBalance := balance - req.AmountCents
		if newBalance < 0 {
			debt := -newBalance
			if !customer.AllowsDebt(debt) {
				return apperr.Newf(apperr.FailedPrecondition,
					"credit limit exceeded: limit %d cents, attempted debt %d cents",
					customer.CreditLimitCents, debt)
			}
		}

		if idemKey != "" {
			if err := s.idempotency.Put(ctx, q, scope, requestID, now); err != nil {
				return err
			}
		}
		if walletExists {
			if err := s.wallets.SetBalance(ctx, q, req.CustomerID, newBalance, now); err != nil {
				return err
			}
		} else {
			w := domain.NewWallet(req.CustomerID, now)
			w.BalanceCents = newBalance
			if err := s.wallets.Create(ctx, q, w); err != nil {
				return err
			}
		}
		if err := s.withdrawals.SetStatus(ctx, q, requestID, domain.WithdrawStatusApproved, callerUID, now); err != nil {
			return err
		}

		debitedCustomerID = req.CustomerID
		entry := &domain.LedgerEntry{
			ID:                ref.NewLedgerEntryID(),
			CustomerID:        req.CustomerID,
			Type:              domain.EntryTypeWithdrawApprove,
			Direction:         domain.DirectionOut,
			AmountCents:       req.AmountCents,
			BalanceAfterCents: &newBalance,
			TxDate:            now,
			CreatedAt:         now,
			CreatedByUID:      callerUID,
			Meta:              domain.LedgerMeta{RequestID: requestID},
		}
		return s.ledger.Append(ctx, q, entry)
	})
	if err != nil {
		return nil, err
	}
	if !idempotent && debitedCustomerID != "" {
		s.invalidateWallet(ctx, debitedCustomerID)
	}
	return &MutationResult{Idempotent: idempotent}, nil
}

// RejectWithdraw moves a pending request to REJECTED. Admin-only. The
// wallet balance is unchanged; the ledger entry records the review outcome
// with the unchanged balance snapshot.
func (s *ledgerService) RejectWithdraw(ctx context.Context, callerUID string, in RejectWithdrawInput) error {
	requestID, err := validate.NonEmptyString(in.RequestID, "requestId", 1, 128)
	if err != nil {
		return err
	}
	var note string
	if in.Note != "" {
		note, err = validate.NonEmptyString(in.Note, "note", 1, 500)
		if err != nil {
			return err
		}
	}

	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.runTx(ctx, s.dbBeginner, func(q repository.DBExecutor) error {
		req, err := s.withdrawals.Get(ctx, q, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.WithdrawStatusPending {
			return apperr.New(apperr.FailedPrecondition, "request is not pending")
		}

		balance := int64(0)
		wallet, err := s.wallets.Get(ctx, q, req.CustomerID)
		if err != nil {
			if !apperr.Is(err, apperr.NotFound) {
				return err
			}
		} else {
			balance = wallet.BalanceCents
		}

		if err := s.withdrawals.SetStatus(ctx, q, requestID, domain.WithdrawStatusRejected, callerUID, now); err != nil {
			return err
		}

		entry := &domain.LedgerEntry{
			ID:                ref.NewLedgerEntryID(),
			CustomerID:        req.CustomerID,
			Type:              domain.EntryTypeWithdrawReject,
			Direction:         domain.DirectionOut,
			AmountCents:       req.AmountCents,
			BalanceAfterCents: &balance,
			TxDate:            now,
			CreatedAt:         now,
			CreatedByUID:      callerUID,
			Meta:              domain.LedgerMeta{RequestID: requestID, Note: note},
		}
		return s.ledger.Append(ctx, q, entry)
	})
}
