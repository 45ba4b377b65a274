// internal/domain/customer.go
package domain

import "time"

// CustomerStatus is the lifecycle state of an onboarded customer.
type CustomerStatus string

const (
	CustomerStatusActive CustomerStatus = "ACTIVE"
	CustomerStatusClosed CustomerStatus = "CLOSED"
)

// Customer is the onboarding record for a savings customer.
// CreditLimitCents bounds how far the wallet may go negative on withdrawal
// approval: 0 means unlimited, any positive value is the maximum permitted
// debt magnitude in cents.
type Customer struct {
	ID               string         `db:"id" json:"id"`
	FullName         string         `db:"full_name" json:"full_name"`
	Phone            string         `db:"phone" json:"phone"`
	CompanyName      string         `db:"company_name" json:"company_name"`
	Address          string         `db:"address" json:"address"`
	DailyTargetCents int64          `db:"daily_target_cents" json:"daily_target_cents"`
	CreditLimitCents int64          `db:"credit_limit_cents" json:"credit_limit_cents"`
	Status           CustomerStatus `db:"status" json:"status"`
	AuthUID          string         `db:"auth_uid" json:"auth_uid"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	CreatedByUID     string         `db:"created_by_uid" json:"created_by_uid"`
}

// AllowsDebt reports whether a debt of the given magnitude is permitted by
// the customer's credit limit.
func (c *Customer) AllowsDebt(debtCents int64) bool {
	return c.CreditLimitCents == 0 || debtCents <= c.CreditLimitCents
}
