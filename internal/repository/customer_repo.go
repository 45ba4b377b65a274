// internal/repository/customer_repo.go
package repository

import (
	"context"

	"susu-ledger/internal/domain"
)

// CustomerRepository defines the interface for customer record operations.
type CustomerRepository interface {
	// Create inserts a new customer record.
	Create(ctx context.Context, q DBExecutor, customer *domain.Customer) error
	// Get retrieves a customer by id. Returns a NotFound error if absent.
	Get(ctx context.Context, q DBExecutor, id string) (*domain.Customer, error)
}

// UserRepository defines the interface for identity-link records.
type UserRepository interface {
	// Create inserts a new user link row.
	Create(ctx context.Context, q DBExecutor, user *domain.User) error
	// Get retrieves the link for an identity uid. Returns a NotFound error
	// if the identity has no profile.
	Get(ctx context.Context, q DBExecutor, uid string) (*domain.User, error)
}
