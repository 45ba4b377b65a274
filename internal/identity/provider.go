// internal/identity/provider.go
package identity

import "context"

// Provider is the identity system the ledger delegates account management
// to. It is a separate system with no joint atomicity with the ledger
// store: callers that create an account and then fail to commit their own
// writes must compensate with DeleteAccount.
type Provider interface {
	// CreateAccount provisions a credentialed account and returns its uid.
	// Returns an AlreadyExists error if the email is taken.
	CreateAccount(ctx context.Context, email, password string) (string, error)
	// DeleteAccount removes an account. Used as the compensating action
	// when onboarding fails after account creation.
	DeleteAccount(ctx context.Context, uid string) error
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
	// VerifyToken validates an access token and returns the caller uid.
	VerifyToken(token string) (string, error)
}
