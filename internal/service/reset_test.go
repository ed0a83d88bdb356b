package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-auth-service/internal/model"
	"go-auth-service/internal/repository"
)

func TestResetTokenService_Create(t *testing.T) {
	repo := new(repository.MockResetTokenRepository)
	svc := NewResetTokenService(repo)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	var inserted *model.PasswordResetToken
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*model.PasswordResetToken")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(*model.PasswordResetToken)
		}).
		Return(nil)

	token, err := svc.Create(context.Background(), "user-123")
	require.NoError(t, err)
	require.Same(t, inserted, token)

	assert.Equal(t, "user-123", token.UserID)
	assert.NotEmpty(t, token.ID)
	assert.GreaterOrEqual(t, len(token.Token), 40)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)
	assert.False(t, token.Used)

	repo.AssertExpectations(t)
}

func TestResetTokenService_CreateTokensAreUnique(t *testing.T) {
	repo := new(repository.MockResetTokenRepository)
	svc := NewResetTokenService(repo)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Create(context.Background(), "user-123")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "user-123")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestResetTokenService_CreatePropagatesInsertFailure(t *testing.T) {
	repo := new(repository.MockResetTokenRepository)
	svc := NewResetTokenService(repo)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.Create(context.Background(), "user-123")
	assert.Error(t, err)
}

func TestResetTokenService_Redeem(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		row     *model.PasswordResetToken
		findErr error
		wantErr error
	}{
		{
			name:    "unknown token",
			findErr: model.ErrResetTokenNotFound,
			wantErr: model.ErrResetTokenNotFound,
		},
		{
			name: "expired token",
			row: &model.PasswordResetToken{
				Token:     "tok",
				ExpiresAt: now.Add(-time.Minute),
			},
			wantErr: model.ErrResetTokenExpired,
		},
		{
			name: "expired and used reports expired",
			row: &model.PasswordResetToken{
				Token:     "tok",
				ExpiresAt: now.Add(-time.Minute),
				Used:      true,
			},
			wantErr: model.ErrResetTokenExpired,
		},
		{
			name: "already used token",
			row: &model.PasswordResetToken{
				Token:     "tok",
				ExpiresAt: now.Add(time.Minute),
				Used:      true,
			},
			wantErr: model.ErrResetTokenAlreadyUsed,
		},
		{
			name: "valid token",
			row: &model.PasswordResetToken{
				Token:     "tok",
				ExpiresAt: now.Add(time.Minute),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repository.MockResetTokenRepository)
			svc := NewResetTokenService(repo)
			svc.now = func() time.Time { return now }

			repo.On("FindByToken", mock.Anything, "tok").Return(tt.row, tt.findErr)

			got, err := svc.Redeem(context.Background(), "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.row, got)
		})
	}
}

func TestResetTokenService_MarkUsedDelegates(t *testing.T) {
	repo := new(repository.MockResetTokenRepository)
	svc := NewResetTokenService(repo)

	repo.On("MarkUsed", mock.Anything, "tok").Return(nil)

	require.NoError(t, svc.MarkUsed(context.Background(), "tok"))
	repo.AssertExpectations(t)
}
