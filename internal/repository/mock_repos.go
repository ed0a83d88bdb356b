package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-auth-service/internal/model"
)

// MockUserRepository is a testify mock of the user store used by service
// tests.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, email string, passwordHash string) (model.User, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// MockResetTokenRepository is a testify mock of the reset-token store.
type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Insert(ctx context.Context, t *model.PasswordResetToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockResetTokenRepository) FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if t, ok := args.Get(0).(*model.PasswordResetToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResetTokenRepository) MarkUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
