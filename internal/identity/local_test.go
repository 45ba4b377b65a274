// internal/identity/local_test.go
package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"susu-ledger/internal/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	p := NewLocalProvider(nil, "test-secret", time.Hour)

	token, err := p.signToken("uid-123")
	require.NoError(t, err)

	uid, err := p.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	signer := NewLocalProvider(nil, "secret-a", time.Hour)
	verifier := NewLocalProvider(nil, "secret-b", time.Hour)

	token, err := signer.signToken("uid-123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.CodeOf(err))
}

func TestVerifyTokenExpired(t *testing.T) {
	p := NewLocalProvider(nil, "test-secret", -time.Minute)

	token, err := p.signToken("uid-123")
	require.NoError(t, err)

	_, err = p.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.CodeOf(err))
}

func TestVerifyTokenGarbage(t *testing.T) {
	p := NewLocalProvider(nil, "test-secret", time.Hour)

	_, err := p.VerifyToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.CodeOf(err))
}
