// internal/identity/local.go
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"susu-ledger/internal/apperr"
	pkgdb "susu-ledger/pkg/db"
)

// LocalProvider is a Provider backed by an auth_accounts table and HS256
// access tokens. Account rows live outside every ledger transaction on
// purpose: the provider models an external identity system.
type LocalProvider struct {
	db       *sqlx.DB
	secret   []byte
	tokenTTL time.Duration
}

// NewLocalProvider creates a LocalProvider.
func NewLocalProvider(db *sqlx.DB, secret string, tokenTTL time.Duration) *LocalProvider {
	return &LocalProvider{db: db, secret: []byte(secret), tokenTTL: tokenTTL}
}

// CreateAccount provisions an account with a bcrypt-hashed password.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.NewString()
	query := `INSERT INTO auth_accounts (uid, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := p.db.ExecContext(ctx, query, uid, email, string(hash), time.Now().UTC()); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return "", apperr.New(apperr.AlreadyExists, "an account with this email already exists")
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return uid, nil
}

// DeleteAccount removes an account. Deleting an absent account is not an
// error, so compensation stays safe to retry.
func (p *LocalProvider) DeleteAccount(ctx context.Context, uid string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM auth_accounts WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", uid, err)
	}
	return nil
}

// Login verifies credentials and returns a signed access token.
func (p *LocalProvider) Login(ctx context.Context, email, password string) (string, error) {
	var account struct {
		UID          string `db:"uid"`
		PasswordHash string `db:"password_hash"`
	}
	err := p.db.GetContext(ctx, &account, `SELECT uid, password_hash FROM auth_accounts WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.New(apperr.Unauthenticated, "invalid credentials")
		}
		return "", fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	return p.signToken(account.UID)
}

// VerifyToken validates an access token and returns the caller uid.
func (p *LocalProvider) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.New(apperr.Unauthenticated, "invalid token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperr.New(apperr.Unauthenticated, "invalid token claims")
	}
	return claims.Subject, nil
}

func (p *LocalProvider) signToken(uid string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		Issuer:    "susu-ledger",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
