// internal/service/onboarding.go
package service

import (
	"context"
	"fmt"
	"time"

	"susu-ledger/internal/domain"
	"susu-ledger/internal/ref"
	"susu-ledger/internal/repository"
	"susu-ledger/internal/validate"
)

// CreateCustomer onboards a new savings customer. The identity-provider
// account is created first, outside the storage transaction, because the
// provider is a separate system with no joint atomicity. If the storage
// transaction then fails, the just-created account is deleted best-effort
// so the email stays reusable; a failed compensation is only logged and the
// original storage error is returned.
func (s *ledgerService) CreateCustomer(ctx context.Context, callerUID string, in CreateCustomerInput) (*CreateCustomerResult, error) {
	fullName, err := validate.NonEmptyString(in.FullName, "fullName", 1, 200)
	if err != nil {
		return nil, err
	}
	phone, err := validate.NonEmptyString(in.Phone, "phone", 1, 32)
	if err != nil {
		return nil, err
	}
	companyName, err := validate.NonEmptyString(in.CompanyName, "companyName", 1, 200)
	if err != nil {
		return nil, err
	}
	address, err := validate.NonEmptyString(in.Address, "address", 1, 500)
	if err != nil {
		return nil, err
	}
	email, err := validate.NonEmptyString(in.Email, "email", 3, 320)
	if err != nil {
		return nil, err
	}
	password, err := validate.NonEmptyString(in.Password, "password", 8, 128)
	if err != nil {
		return nil, err
	}
	if err := validate.Cents(in.DailyTargetCents, "dailyTargetCents"); err != nil {
		return nil, err
	}
	if err := validate.CentsOrZero(in.CreditLimitCents, "creditLimitCents"); err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	uid, err := s.provider.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, err
	}

	customerID := ref.NewCustomerID()
	now := time.Now().UTC()

	txErr := s.runTx(ctx, s.dbBeginner, func(q repository.DBExecutor) error {
		customer := &domain.Customer{
			ID:               customerID,
			FullName:         fullName,
			Phone:            phone,
			CompanyName:      companyName,
			Address:          address,
			DailyTargetCents: in.DailyTargetCents,
			CreditLimitCents: in.CreditLimitCents,
			Status:           domain.CustomerStatusActive,
			AuthUID:          uid,
			CreatedAt:        now,
			CreatedByUID:     callerUID,
		}
		if err := s.customers.Create(ctx, q, customer); err != nil {
			return err
		}

		user := &domain.User{
			UID:        uid,
			Role:       domain.RoleCustomer,
			CustomerID: &customerID,
			CreatedAt:  now,
		}
		if err := s.users.Create(ctx, q, user); err != nil {
			return err
		}

		return s.wallets.Create(ctx, q, domain.NewWallet(customerID, now))
	})
	if txErr != nil {
		// Compensating action, not a distributed transaction: the account
		// must not survive as an orphaned credential.
		if delErr := s.provider.DeleteAccount(ctx, uid); delErr != nil {
			s.logger.Error("failed to delete orphaned identity account",
				"uid", uid, "error", delErr)
		}
		return nil, fmt.Errorf("customer onboarding failed: %w", txErr)
	}

	return &CreateCustomerResult{CustomerID: customerID, UID: uid, Email: email}, nil
}
