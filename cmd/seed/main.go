// cmd/seed/main.go
//
// Seeds an admin identity so a fresh deployment has a caller able to
// onboard customers. Safe to re-run: an existing account is left alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/config"
	"susu-ledger/internal/domain"
	"susu-ledger/internal/identity"
	"susu-ledger/internal/repository/postgres"
	"susu-ledger/internal/util"
	"susu-ledger/pkg/db"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	superadmin := flag.Bool("superadmin", false, "grant the superadmin role instead of admin")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -email <email> -password <password> [-superadmin]")
		os.Exit(2)
	}

	config.LoadEnv()
	util.InitLogger()
	logger := util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.ApplyMigrations(ctx, database, cfg.MigrationsDir); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	provider := identity.NewLocalProvider(database, cfg.JWTSecret, cfg.TokenTTL)
	uid, err := provider.CreateAccount(ctx, *email, *password)
	if err != nil {
		if apperr.Is(err, apperr.AlreadyExists) {
			logger.Info("admin account already exists, nothing to do", "email", *email)
			return
		}
		logger.Error("failed to create admin account", "error", err)
		os.Exit(1)
	}

	role := domain.RoleAdmin
	if *superadmin {
		role = domain.RoleSuperadmin
	}
	users := postgres.NewUserRepository(database)
	if err := users.Create(ctx, database, &domain.User{
		UID:       uid,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		logger.Error("failed to create admin user link", "error", err)
		os.Exit(1)
	}

	logger.Info("admin seeded", "uid", uid, "email", *email, "role", string(role))
}
