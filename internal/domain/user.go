// internal/domain/user.go
package domain

import "time"

// Role is the caller's authorization level.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsAdmin reports whether the role carries admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// User links an identity-provider account to a role and, for customers,
// to their customer record. A caller with no user row is treated as a
// plain customer with no linked profile.
type User struct {
	UID        string    `db:"uid" json:"uid"`
	Role       Role      `db:"role" json:"role"`
	CustomerID *string   `db:"customer_id" json:"customer_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
