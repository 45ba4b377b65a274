// internal/domain/withdraw_request.go
package domain

import "time"

// WithdrawStatus is the state of a withdraw request.
// PENDING -> APPROVED | PENDING -> REJECTED; terminal states never reopen.
type WithdrawStatus string

const (
	WithdrawStatusPending  WithdrawStatus = "PENDING"
	WithdrawStatusApproved WithdrawStatus = "APPROVED"
	WithdrawStatusRejected WithdrawStatus = "REJECTED"
)

// WithdrawRequest is a proposed outbound movement awaiting admin review.
// The wallet balance is untouched until approval.
type WithdrawRequest struct {
	ID             string         `db:"id" json:"id"`
	CustomerID     string         `db:"customer_id" json:"customer_id"`
	AmountCents    int64          `db:"amount_cents" json:"amount_cents"`
	Reason         string         `db:"reason" json:"reason"`
	Status         WithdrawStatus `db:"status" json:"status"`
	RequestedByUID string         `db:"requested_by_uid" json:"requested_by_uid"`
	ReviewedByUID  *string        `db:"reviewed_by_uid" json:"reviewed_by_uid"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// NewWithdrawRequest creates a pending request.
func NewWithdrawRequest(id, customerID string, amountCents int64, reason, requestedByUID string, now time.Time) *WithdrawRequest {
	return &WithdrawRequest{
		ID:             id,
		CustomerID:     customerID,
		AmountCents:    amountCents,
		Reason:         reason,
		Status:         WithdrawStatusPending,
		RequestedByUID: requestedByUID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
