package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-auth-service/internal/model"
)

// resetTokenTTL is the fixed validity window of a password-reset token.
const resetTokenTTL = time.Hour

const resetTokenBytes = 32

type ResetTokenRepo interface {
	Insert(ctx context.Context, t *model.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, token string) error
}

// ResetTokenService owns the reset-token lifecycle rules: unguessable
// generation, 1h expiry, at most one successful redemption.
type ResetTokenService struct {
	repo ResetTokenRepo
	now  func() time.Time
}

func NewResetTokenService(repo ResetTokenRepo) *ResetTokenService {
	return &ResetTokenService{repo: repo, now: time.Now}
}

func (s *ResetTokenService) Create(ctx context.Context, userID string) (*model.PasswordResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now().UTC()
	token := &model.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     base64.RawURLEncoding.EncodeToString(buf),
		ExpiresAt: now.Add(resetTokenTTL),
		Used:      false,
		CreatedAt: now,
	}

	if err := s.repo.Insert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Redeem validates a token without consuming it: the caller marks it
// used only after the password update succeeds. Expiry is checked before
// the used flag, so an expired-and-used token reports expired.
func (s *ResetTokenService) Redeem(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	t, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !t.ExpiresAt.After(s.now()) {
		return nil, model.ErrResetTokenExpired
	}
	if t.Used {
		return nil, model.ErrResetTokenAlreadyUsed
	}
	return t, nil
}

func (s *ResetTokenService) MarkUsed(ctx context.Context, token string) error {
	return s.repo.MarkUsed(ctx, token)
}
