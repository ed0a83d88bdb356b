package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auth-service/internal/model"
)

type stubVerifier struct {
	claims *model.SessionClaims
	err    error
	seen   string
}

func (s *stubVerifier) Verify(token string) (*model.SessionClaims, error) {
	s.seen = token
	return s.claims, s.err
}

func runGuard(t *testing.T, verifier *stubVerifier, authHeader string) (*httptest.ResponseRecorder, *model.SessionClaims) {
	t.Helper()

	var captured *model.SessionClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	NewAuthMiddleware(verifier).RequireAuth(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	verifier := &stubVerifier{}
	rec, _ := runGuard(t, verifier, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, verifier.seen, "verifier must not be consulted without a header")
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	for _, header := range []string{"Token abc", "bearer abc", "Bearerabc"} {
		verifier := &stubVerifier{}
		rec, _ := runGuard(t, verifier, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("nope")}
	rec, _ := runGuard(t, verifier, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "bad-token", verifier.seen)
}

func TestRequireAuth_FailuresAreUniform(t *testing.T) {
	missing, _ := runGuard(t, &stubVerifier{}, "")
	wrongScheme, _ := runGuard(t, &stubVerifier{}, "Token abc")
	invalid, _ := runGuard(t, &stubVerifier{err: errors.New("expired")}, "Bearer abc")

	assert.Equal(t, missing.Body.String(), wrongScheme.Body.String())
	assert.Equal(t, missing.Body.String(), invalid.Body.String())
}

func TestRequireAuth_ValidTokenPassesClaims(t *testing.T) {
	verifier := &stubVerifier{claims: &model.SessionClaims{Subject: "u1"}}
	rec, captured := runGuard(t, verifier, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "good-token", verifier.seen)
	require.NotNil(t, captured)
	assert.Equal(t, "u1", captured.Subject)
}
