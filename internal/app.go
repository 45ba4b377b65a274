// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "susu-ledger/internal/api"
	"susu-ledger/internal/api/handler"
	"susu-ledger/internal/cache"
	"susu-ledger/internal/config"
	"susu-ledger/internal/identity"
	"susu-ledger/internal/repository"
	"susu-ledger/internal/repository/postgres"
	"susu-ledger/internal/service"
	"susu-ledger/internal/util"
	"susu-ledger/pkg/db"
)

// walletCacheTTL bounds how stale a cached balance snapshot can be.
const walletCacheTTL = 30 * time.Second

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	UserRepository        repository.UserRepository
	CustomerRepository    repository.CustomerRepository
	WalletRepository      repository.WalletRepository
	LedgerRepository      repository.LedgerRepository
	WithdrawRepository    repository.WithdrawRequestRepository
	IdempotencyRepository repository.IdempotencyRepository

	// Identity and services
	IdentityProvider identity.Provider
	LedgerService    service.LedgerService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.ApplyMigrations(ctx, app.DB, app.Config.MigrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	app.Logger.Info("Migrations applied.")

	app.Redis = redis.NewClient(&redis.Options{
		Addr:     app.Config.Redis.Addr,
		Password: app.Config.Redis.Password,
		DB:       app.Config.Redis.DB,
	})
	var balanceCache service.BalanceCache
	if err := app.Redis.Ping(ctx).Err(); err != nil {
		// The cache is an optimization; the service runs without it.
		app.Logger.Warn("Redis unavailable, wallet cache disabled", "error", err)
	} else {
		balanceCache = cache.NewWalletCache(app.Redis, walletCacheTTL, app.Logger)
		app.Logger.Info("Wallet cache enabled.")
	}

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.CustomerRepository = postgres.NewCustomerRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.LedgerRepository = postgres.NewLedgerRepository(app.DB)
	app.WithdrawRepository = postgres.NewWithdrawRequestRepository(app.DB)
	app.IdempotencyRepository = postgres.NewIdempotencyRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	app.IdentityProvider = identity.NewLocalProvider(app.DB, app.Config.JWTSecret, app.Config.TokenTTL)

	app.LedgerService = service.NewLedgerService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor for non-transactional reads
		app.UserRepository,
		app.CustomerRepository,
		app.WalletRepository,
		app.LedgerRepository,
		app.WithdrawRepository,
		app.IdempotencyRepository,
		app.IdentityProvider,
		balanceCache,
		db.RunTx,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	ledgerHandler := handler.NewLedgerHandler(app.LedgerService, func(r *http.Request) string {
		return router.UIDFromContext(r.Context())
	}, app.Logger)
	authHandler := handler.NewAuthHandler(app.IdentityProvider, app.Logger)
	app.HTTPHandler = router.NewRouter(ledgerHandler, authHandler, app.IdentityProvider, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close Redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
