// internal/service/savings.go
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

// RecordDailySaving credits a customer's wallet with one daily savings
// payment. Admin-only. The transaction date is required and hard-validated;
// an optional txDay label ("YYYY-MM-DD") is stored verbatim for
// day-bucketed queries.
func (s *ledgerService) RecordDailySaving(ctx context.Context, callerUID string, in DailySavingInput) (*MutationResult, error) {
	customerID, err := validate.NonEmptyString(in.CustomerID, "customerId", 1, 128)
	if err != nil {
		return nil, err
	}
	if err := validate.Cents(in.AmountCents, "amountCents"); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := validate.TimestampMillis(in.TxDateMillis, "txDateMillis", now); err != nil {
		return nil, err
	}
	txDate := time.UnixMilli(in.TxDateMillis).UTC()

	var txDay *string
	if in.TxDay != "" {
		day, err := validate.DayLabel(in.TxDay, "txDay")
		if err != nil {
			return nil, err
		}
		txDay = &day
	}
	note, idemKey, err := optionalNoteAndKey(in.Note, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	return s.recordCredit(ctx, creditOp{
		callerUID:   callerUID,
		customerID:  customerID,
		amountCents: in.AmountCents,
		entryType:   domain.EntryTypeDailyPayment,
		txDate:      txDate,
		txDay:       txDay,
		note:        note,
		idemKey:     idemKey,
		now:         now,
	})
}

// RecordDeposit credits a customer's wallet with a lump-sum deposit.
// Admin-only. Unlike daily savings, a missing or implausible transaction
// date never rejects the call: the commit time is substituted silently.
func (s *ledgerService) RecordDeposit(ctx context.Context, callerUID string, in DepositInput) (*MutationResult, error) {
	customerID, err := validate.NonEmptyString(in.CustomerID, "customerId", 1, 128)
	if err != nil {
		return nil, err
	}
	if err := validate.Cents(in.AmountCents, "amountCents"); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	txDate := now
	if in.TxDateMillis != nil {
		if err := validate.TimestampMillis(*in.TxDateMillis, "txDateMillis", now); err == nil {
			txDate = time.UnixMilli(*in.TxDateMillis).UTC()
		}
	}
	note, idemKey, err := optionalNoteAndKey(in.Note, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	return s.recordCredit(ctx, creditOp{
		callerUID:   callerUID,
		customerID:  customerID,
		amountCents: in.AmountCents,
		entryType:   domain.EntryTypeDeposit,
		txDate:      txDate,
		note:        note,
		idemKey:     idemKey,
		now:         now,
	})
}

type creditOp struct {
	callerUID   string
	customerID  string
	amountCents int64
	entryType   domain.EntryType
	txDate      time.Time
	txDay       *string
	note        string
	idemKey     string
	now         time.Time
}

// recordCredit runs the shared credit recipe in one transaction: check the
// idempotency marker, read the wallet, then write marker, wallet and ledger
// entry. All reads are issued before the first write.
func (s *ledgerService) recordCredit(ctx context.Context, op creditOp) (*MutationResult, error) {
	idempotent := false
	err := s.runTx(ctx, s.dbBeginner, func(q repository.DBExecutor) error {
		idempotent = false
		scope := ref.Idempotency(op.callerUID, op.idemKey)
		if op.idemKey != "" {
			exists, err := s.idempotency.Exists(ctx, q, scope)
			if err != nil {
				return err
			}
			if exists {
				idempotent = true
				return nil
			}
		}

		current := int64(0)
		walletExists := true
		wallet, err := s.wallets.Get(ctx, q, op.customerID)
		if err != nil {
			if !apperr.Is(err, apperr.NotFound) {
				return err
			}
			walletExists = false
		} else {
			current = wallet.BalanceCents
		}
		next := current + op.amountCents

		if op.idemKey != "" {
			if err := s.idempotency.Put(ctx, q, scope, "", op.now); err != nil {
				return err
			}
		}
		if walletExists {
			if err := s.wallets.SetBalance(ctx, q, op.customerID, next, op.now); err != nil {
				return err
			}
		} else {
			w := domain.NewWallet(op.customerID, op.now)
			w.BalanceCents = next
			if err := s.wallets.Create(ctx, q, w); err != nil {
				return err
			}
		}

		entry := &domain.LedgerEntry{
			ID:                ref.NewLedgerEntryID(),
			CustomerID:        op.customerID,
			Type:              op.entryType,
			Direction:         domain.DirectionIn,
			AmountCents:       op.amountCents,
			BalanceAfterCents: &next,
			TxDate:            op.txDate,
			TxDay:             op.txDay,
			CreatedAt:         op.now,
			CreatedByUID:      op.callerUID,
			Meta:              domain.LedgerMeta{Note: op.note},
		}
		return s.ledger.Append(ctx, q, entry)
	})
	if err != nil {
		return nil, err
	}
	if !idempotent {
		s.invalidateWallet(ctx, op.customerID)
	}
	return &MutationResult{Idempotent: idempotent}, nil
}

func optionalNoteAndKey(note, idemKey string) (string, string, error) {
	var err error
	if note != "" {
		note, err = validate.NonEmptyString(note, "note", 1, 500)
		if err != nil {
			return "", "", err
		}
	}
	if idemKey != "" {
		idemKey, err = validate.NonEmptyString(idemKey, "idempotencyKey", 1, 128)
		if err != nil {
			return "", "", err
		}
	}
	return note, idemKey, nil
}
