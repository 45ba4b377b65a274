// internal/service/access.go
package service

import (
	"context"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/domain"
	"susu-ledger/internal/repository"
)

// loadRole resolves the caller's role. A caller with no user row is treated
// as a plain customer: absence never elevates, so the posture stays
// fail-closed on the explicit admin check.
func (s *ledgerService) loadRole(ctx context.Context, q repository.DBExecutor, uid string) (domain.Role, error) {
	user, err := s.users.Get(ctx, q, uid)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return domain.RoleCustomer, nil
		}
		return "", err
	}
	return user.Role, nil
}

// requireAuth rejects calls without an authenticated identity.
func requireAuth(callerUID string) error {
	if callerUID == "" {
		return apperr.New(apperr.Unauthenticated, "sign in required")
	}
	return nil
}

// requireAdmin rejects callers whose role is not admin or superadmin.
func (s *ledgerService) requireAdmin(ctx context.Context, callerUID string) error {
	if err := requireAuth(callerUID); err != nil {
		return err
	}
	role, err := s.loadRole(ctx, s.dbExecutor, callerUID)
	if err != nil {
		return err
	}
	if !role.IsAdmin() {
		return apperr.New(apperr.PermissionDenied, "admin role required")
	}
	return nil
}

// resolveActingCustomer determines which customer a call operates on. An
// explicit target customer id requires an admin caller; otherwise the
// caller's own linked customer id is used. adminActing reports which path
// was taken so transaction closures know whether the customer record must
// be verified.
func (s *ledgerService) resolveActingCustomer(ctx context.Context, callerUID, requestedCustomerID string) (customerID string, adminActing bool, err error) {
	if requestedCustomerID != "" {
		if err := s.requireAdmin(ctx, callerUID); err != nil {
			return "", false, err
		}
		return requestedCustomerID, true, nil
	}

	user, err := s.users.Get(ctx, s.dbExecutor, callerUID)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return "", false, apperr.New(apperr.FailedPrecondition, "caller has no linked customer profile")
		}
		return "", false, err
	}
	if user.CustomerID == nil {
		return "", false, apperr.New(apperr.FailedPrecondition, "caller has no linked customer profile")
	}
	return *user.CustomerID, false, nil
}

// canReadCustomer enforces the read-side ownership rule: admins may read
// any customer, customers only themselves.
func (s *ledgerService) canReadCustomer(ctx context.Context, callerUID, customerID string) error {
	if err := requireAuth(callerUID); err != nil {
		return err
	}
	user, err := s.users.Get(ctx, s.dbExecutor, callerUID)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return apperr.New(apperr.PermissionDenied, "not allowed to read this wallet")
		}
		return err
	}
	if user.Role.IsAdmin() {
		return nil
	}
	if user.CustomerID != nil && *user.CustomerID == customerID {
		return nil
	}
	return apperr.New(apperr.PermissionDenied, "not allowed to read this wallet")
}
