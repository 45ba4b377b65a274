// internal/ref/ref.go
package ref

import "github.com/google/uuid"

// Logical entities map to storage keys deterministically: wallets are keyed
// by customer id (one wallet per customer), ledger entries and withdraw
// requests get fresh opaque ids, and idempotency markers are scoped per
// caller identity then per client-supplied key.

// NewCustomerID returns a fresh opaque customer id.
func NewCustomerID() string { return uuid.NewString() }

// NewLedgerEntryID returns a fresh opaque ledger entry id.
func NewLedgerEntryID() string { return uuid.NewString() }

// NewWithdrawRequestID returns a fresh opaque withdraw request id.
func NewWithdrawRequestID() string { return uuid.NewString() }

// IdempotencyScope identifies an idempotency marker.
type IdempotencyScope struct {
	CallerUID string
	Key       string
}

// Idempotency builds the marker scope for a caller and client key.
func Idempotency(callerUID, key string) IdempotencyScope {
	return IdempotencyScope{CallerUID: callerUID, Key: key}
}
