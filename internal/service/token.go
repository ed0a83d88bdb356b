package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-auth-service/internal/model"
)

// sessionTTL is the fixed validity window of a session token. Expiry
// forces a full re-login; there is no refresh.
const sessionTTL = 24 * time.Hour

// TokenService signs and verifies stateless HS256 session tokens. The
// secret is loaded once at startup and never rotated.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is required")
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, then structure, then expiry against the
// wall clock at call time. A token signed with another key or altered in
// any byte fails verification.
func (s *TokenService) Verify(tokenString string) (*model.SessionClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))

	switch {
	case err == nil && parsed.Valid:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, model.ErrTokenMalformed
	default:
		return nil, model.ErrTokenSignatureInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenMalformed
	}

	subject, _ := claimsMap["sub"].(string)
	if subject == "" {
		return nil, model.ErrTokenMalformed
	}

	claims := &model.SessionClaims{Subject: subject}
	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = int64(iat)
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.ExpiresAt = int64(exp)
	}

	return claims, nil
}
