// internal/repository/postgres/customer_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/domain"
	"susu-ledger/internal/repository"
	pkgdb "susu-ledger/pkg/db"
)

// CustomerRepository implements repository.CustomerRepository for PostgreSQL.
type CustomerRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &CustomerRepository{}
}

// Create inserts a new customer record using the provided DBExecutor.
func (r *CustomerRepository) Create(ctx context.Context, q repository.DBExecutor, customer *domain.Customer) error {
	query := `INSERT INTO customers
              (id, full_name, phone, company_name, address, daily_target_cents, credit_limit_cents, status, auth_uid, created_at, created_by_uid)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := q.ExecContext(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Phone,
		customer.CompanyName,
		customer.Address,
		customer.DailyTargetCents,
		customer.CreditLimitCents,
		customer.Status,
		customer.AuthUID,
		customer.CreatedAt,
		customer.CreatedByUID,
	)
	if err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return apperr.New(apperr.AlreadyExists, "customer already exists")
		}
		return fmt.Errorf("failed to create customer %s: %w", customer.ID, err)
	}
	return nil
}

// Get retrieves a customer by id using the provided DBExecutor.
func (r *CustomerRepository) Get(ctx context.Context, q repository.DBExecutor, id string) (*domain.Customer, error) {
	var customer domain.Customer
	query := `SELECT id, full_name, phone, company_name, address, daily_target_cents, credit_limit_cents, status, auth_uid, created_at, created_by_uid
              FROM customers WHERE id = $1`
	err := q.GetContext(ctx, &customer, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "customer %s not found", id)
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", id, err)
	}
	return &customer, nil
}

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// Create inserts a new user link row using the provided DBExecutor.
func (r *UserRepository) Create(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (uid, role, customer_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, user.UID, user.Role, user.CustomerID, user.CreatedAt)
	if err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return apperr.New(apperr.AlreadyExists, "user already exists")
		}
		return fmt.Errorf("failed to create user %s: %w", user.UID, err)
	}
	return nil
}

// Get retrieves a user link by identity uid using the provided DBExecutor.
func (r *UserRepository) Get(ctx context.Context, q repository.DBExecutor, uid string) (*domain.User, error) {
	var user domain.User
	query := `SELECT uid, role, customer_id, created_at FROM users WHERE uid = $1`
	err := q.GetContext(ctx, &user, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "user profile not found")
		}
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	return &user, nil
}
