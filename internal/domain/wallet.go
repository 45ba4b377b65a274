// internal/domain/wallet.go
package domain

import "time"

// Wallet is the per-customer running balance. There is exactly one wallet
// per customer id; it is created lazily on first money movement and never
// deleted. The balance may go negative when the customer's credit limit
// allows it.
type Wallet struct {
	CustomerID   string    `db:"customer_id" json:"customer_id"`
	BalanceCents int64     `db:"balance_cents" json:"balance_cents"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NewWallet creates a zero-balance wallet for a customer.
func NewWallet(customerID string, now time.Time) *Wallet {
	return &Wallet{
		CustomerID:   customerID,
		BalanceCents: 0,
		UpdatedAt:    now,
	}
}
