// internal/service/ledger_service.go
package service

import (
	"context"
	"log/slog"

	"susu-ledger/internal/domain"
	"susu-ledger/internal/identity"
	"susu-ledger/internal/repository"
	"susu-ledger/pkg/db"
)

// LedgerService defines the money-moving operations of the savings ledger.
// Every mutation runs as one atomic transaction; on success no partial
// writes are ever visible, and Idempotent=true on a result means the call
// was a no-op replay of an earlier completed call.
type LedgerService interface {
	CreateCustomer(ctx context.Context, callerUID string, in CreateCustomerInput) (*CreateCustomerResult, error)
	RecordDailySaving(ctx context.Context, callerUID string, in DailySavingInput) (*MutationResult, error)
	RecordDeposit(ctx context.Context, callerUID string, in DepositInput) (*MutationResult, error)
	RequestWithdraw(ctx context.Context, callerUID string, in WithdrawInput) (*WithdrawResult, error)
	ApproveWithdraw(ctx context.Context, callerUID string, in ApproveWithdrawInput) (*MutationResult, error)
	RejectWithdraw(ctx context.Context, callerUID string, in RejectWithdrawInput) error

	GetWallet(ctx context.Context, callerUID, customerID string) (*domain.Wallet, error)
	ListLedger(ctx context.Context, callerUID, customerID string, limit, offset int) ([]domain.LedgerEntry, int64, error)
	ListWithdrawRequests(ctx context.Context, callerUID string, status *domain.WithdrawStatus, limit, offset int) ([]domain.WithdrawRequest, int64, error)
}

// CreateCustomerInput carries the onboarding payload.
type CreateCustomerInput struct {
	FullName         string
	Phone            string
	CompanyName      string
	Address          string
	Email            string
	Password         string
	DailyTargetCents int64
	CreditLimitCents int64 // 0 = unlimited negative balance
}

// CreateCustomerResult is the onboarding success summary.
type CreateCustomerResult struct {
	CustomerID string
	UID        string
	Email      string
}

// DailySavingInput carries a daily savings payment. Optional string fields
// use "" for absent.
type DailySavingInput struct {
	CustomerID     string
	AmountCents    int64
	TxDateMillis   int64
	TxDay          string
	Note           string
	IdempotencyKey string
}

// DepositInput carries a lump-sum deposit. TxDateMillis is optional; when
// nil or implausible the commit time is substituted silently (this policy
// intentionally differs from daily savings, which rejects bad timestamps).
type DepositInput struct {
	CustomerID     string
	AmountCents    int64
	TxDateMillis   *int64
	Note           string
	IdempotencyKey string
}

// MutationResult reports whether the call short-circuited on an
// idempotency marker.
type MutationResult struct {
	Idempotent bool
}

// WithdrawInput carries a withdraw request. CustomerID is set only when an
// admin acts on behalf of an explicit customer.
type WithdrawInput struct {
	AmountCents int64
	Reason      string
	CustomerID  string
}

// WithdrawResult is the withdraw request success summary.
type WithdrawResult struct {
	RequestID string
}

// ApproveWithdrawInput carries a withdraw approval.
type ApproveWithdrawInput struct {
	RequestID      string
	IdempotencyKey string
}

// RejectWithdrawInput carries a withdraw rejection with an optional note.
type RejectWithdrawInput struct {
	RequestID string
	Note      string
}

// BalanceCache is the read cache for wallet snapshots. Implementations are
// best-effort; all methods must be safe to skip on failure.
type BalanceCache interface {
	Get(ctx context.Context, customerID string) (*domain.Wallet, bool)
	Set(ctx context.Context, wallet *domain.Wallet)
	Invalidate(ctx context.Context, customerID string)
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner  db.DBTxBeginner       // for starting transactions (e.g. *sqlx.DB)
	dbExecutor  repository.DBExecutor // for non-transactional reads (e.g. *sqlx.DB)
	users       repository.UserRepository
	customers   repository.CustomerRepository
	wallets     repository.WalletRepository
	ledger      repository.LedgerRepository
	withdrawals repository.WithdrawRequestRepository
	idempotency repository.IdempotencyRepository
	provider    identity.Provider
	cache       BalanceCache // may be nil
	runTx       db.RunTxFunc // injected transaction engine
	logger      *slog.Logger
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	users repository.UserRepository,
	customers repository.CustomerRepository,
	wallets repository.WalletRepository,
	ledger repository.LedgerRepository,
	withdrawals repository.WithdrawRequestRepository,
	idempotency repository.IdempotencyRepository,
	provider identity.Provider,
	cache BalanceCache,
	runTx db.RunTxFunc,
	logger *slog.Logger,
) LedgerService {
	return &ledgerService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		users:       users,
		customers:   customers,
		wallets:     wallets,
		ledger:      ledger,
		withdrawals: withdrawals,
		idempotency: idempotency,
		provider:    provider,
		cache:       cache,
		runTx:       runTx,
		logger:      logger,
	}
}

func (s *ledgerService) invalidateWallet(ctx context.Context, customerID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, customerID)
	}
}
