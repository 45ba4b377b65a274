// internal/domain/ledger.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryTypeDailyPayment    EntryType = "DAILY_PAYMENT"
	EntryTypeDeposit         EntryType = "DEPOSIT"
	EntryTypeWithdrawRequest EntryType = "WITHDRAW_REQUEST"
	EntryTypeWithdrawApprove EntryType = "WITHDRAW_APPROVE"
	EntryTypeWithdrawReject  EntryType = "WITHDRAW_REJECT"
)

// Direction is the sign of a money movement against the wallet.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// LedgerMeta carries optional free-form context for an entry. It is stored
// as a single JSONB column.
type LedgerMeta struct {
	Note      string `json:"note,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// IsZero reports whether the meta carries nothing worth persisting.
func (m LedgerMeta) IsZero() bool {
	return m == LedgerMeta{}
}

// Value implements driver.Valuer for the JSONB meta column.
func (m LedgerMeta) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for the JSONB meta column.
func (m *LedgerMeta) Scan(src any) error {
	if src == nil {
		*m = LedgerMeta{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ledger meta: unsupported scan type %T", src)
	}
	return json.Unmarshal(b, m)
}

// LedgerEntry is one immutable, directional money movement (or recorded
// intent, for WITHDRAW_REQUEST/WITHDRAW_REJECT) against a wallet.
// Entries are append-only; the wallet balance equals the signed sum of all
// applied entries in commit order.
type LedgerEntry struct {
	ID                string     `db:"id" json:"id"`
	CustomerID        string     `db:"customer_id" json:"customer_id"`
	Type              EntryType  `db:"type" json:"type"`
	Direction         Direction  `db:"direction" json:"direction"`
	AmountCents       int64      `db:"amount_cents" json:"amount_cents"`
	BalanceAfterCents *int64     `db:"balance_after_cents" json:"balance_after_cents"`
	TxDate            time.Time  `db:"tx_date" json:"tx_date"`       // logical transaction time
	TxDay             *string    `db:"tx_day" json:"tx_day"`         // optional YYYY-MM-DD bucket label
	CreatedAt         time.Time  `db:"created_at" json:"created_at"` // commit time
	CreatedByUID      string     `db:"created_by_uid" json:"created_by_uid"`
	Meta              LedgerMeta `db:"meta" json:"meta"`
}
