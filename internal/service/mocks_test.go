// internal/service/mocks_test.go
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"susu-ledger/internal/domain"
	"susu-ledger/internal/ref"
	"susu-ledger/internal/repository"
	"susu-ledger/pkg/db"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, q repository.DBExecutor, uid string) (*domain.User, error) {
	args := m.Called(ctx, q, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCustomerRepository is a mock implementation of repository.CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, q repository.DBExecutor, customer *domain.Customer) error {
	args := m.Called(ctx, q, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, q repository.DBExecutor, id string) (*domain.Customer, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Get(ctx context.Context, q repository.DBExecutor, customerID string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Create(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) SetBalance(ctx context.Context, q repository.DBExecutor, customerID string, balanceCents int64, updatedAt time.Time) error {
	args := m.Called(ctx, q, customerID, balanceCents, updatedAt)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of repository.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, q repository.DBExecutor, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListByCustomer(ctx context.Context, q repository.DBExecutor, customerID string, limit, offset int) ([]domain.LedgerEntry, int64, error) {
	args := m.Called(ctx, q, customerID, limit, offset)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

// MockWithdrawRepository is a mock implementation of repository.WithdrawRequestRepository.
type MockWithdrawRepository struct {
	mock.Mock
}

func (m *MockWithdrawRepository) Create(ctx context.Context, q repository.DBExecutor, req *domain.WithdrawRequest) error {
	args := m.Called(ctx, q, req)
	return args.Error(0)
}

func (m *MockWithdrawRepository) Get(ctx context.Context, q repository.DBExecutor, id string) (*domain.WithdrawRequest, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawRequest), args.Error(1)
}

func (m *MockWithdrawRepository) SetStatus(ctx context.Context, q repository.DBExecutor, id string, status domain.WithdrawStatus, reviewedByUID string, updatedAt time.Time) error {
	args := m.Called(ctx, q, id, status, reviewedByUID, updatedAt)
	return args.Error(0)
}

func (m *MockWithdrawRepository) List(ctx context.Context, q repository.DBExecutor, status *domain.WithdrawStatus, limit, offset int) ([]domain.WithdrawRequest, int64, error) {
	args := m.Called(ctx, q, status, limit, offset)
	return args.Get(0).([]domain.WithdrawRequest), args.Get(1).(int64), args.Error(2)
}

// MockIdempotencyRepository is a mock implementation of repository.IdempotencyRepository.
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) Exists(ctx context.Context, q repository.DBExecutor, scope ref.IdempotencyScope) (bool, error) {
	args := m.Called(ctx, q, scope)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyRepository) Put(ctx context.Context, q repository.DBExecutor, scope ref.IdempotencyScope, requestID string, createdAt time.Time) error {
	args := m.Called(ctx, q, scope, requestID, createdAt)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of identity.Provider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteAccount(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockIdentityProvider) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) VerifyToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// passRunTx substitutes the transaction engine with a direct call: the
// closure runs once with no executor. Repositories are mocked, so nothing
// touches a database.
func passRunTx(ctx context.Context, beginner db.DBTxBeginner, fn db.TxFunc) error {
	return fn(nil)
}

// fixture bundles a service wired to mocks.
type fixture struct {
	users       *MockUserRepository
	customers   *MockCustomerRepository
	wallets     *MockWalletRepository
	ledger      *MockLedgerRepository
	withdrawals *MockWithdrawRepository
	idempotency *MockIdempotencyRepository
	provider    *MockIdentityProvider
	svc         LedgerService
}

func newFixture() *fixture {
	f := &fixture{
		users:       new(MockUserRepository),
		customers:   new(MockCustomerRepository),
		wallets:     new(MockWalletRepository),
		ledger:      new(MockLedgerRepository),
		withdrawals: new(MockWithdrawRepository),
		idempotency: new(MockIdempotencyRepository),
		provider:    new(MockIdentityProvider),
	}
	f.svc = NewLedgerService(
		nil, nil,
		f.users, f.customers, f.wallets, f.ledger, f.withdrawals, f.idempotency,
		f.provider,
		nil, // no balance cache in unit tests
		passRunTx,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

const (
	adminUID    = "admin-uid"
	customerUID = "customer-uid"
	custID      = "cust-1"
)

// grantAdmin makes adminUID resolve to the admin role.
func (f *fixture) grantAdmin() {
	f.users.On("Get", mock.Anything, mock.Anything, adminUID).
		Return(&domain.User{UID: adminUID, Role: domain.RoleAdmin}, nil)
}

// linkCustomer makes customerUID resolve to a customer linked to custID.
func (f *fixture) linkCustomer() {
	cid := custID
	f.users.On("Get", mock.Anything, mock.Anything, customerUID).
		Return(&domain.User{UID: customerUID, Role: domain.RoleCustomer, CustomerID: &cid}, nil)
}
