// internal/api/middleware.go
package api

import (
	"context"
	"net/http"
	"strings"

	"susu-ledger/internal/identity"
)

type ctxKey int

const uidKey ctxKey = iota

// Authenticator validates the Bearer token on every request and stores the
// caller uid in the request context. Requests without a valid token are
// rejected with 401.
func Authenticator(provider identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorBody(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			uid, err := provider.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeErrorBody(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), uidKey, uid)))
		})
	}
}

// UIDFromContext returns the authenticated caller uid, if any.
func UIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(uidKey).(string)
	return uid
}
