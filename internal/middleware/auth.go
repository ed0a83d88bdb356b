package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-auth-service/internal/model"
)

const bearerPrefix = "Bearer "

type tokenVerifier interface {
	Verify(token string) (*model.SessionClaims, error)
}

type contextKey string

const sessionClaimsContextKey contextKey = "session_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects the request unless it carries a valid bearer
// token. Every failure mode collapses to the same 401 response; callers
// never learn whether the header was missing, malformed or expired.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			writeUnauthenticated(w)
			return
		}

		claims, err := m.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), sessionClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*model.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsContextKey).(*model.SessionClaims)
	return claims, ok
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		},
	})
}
