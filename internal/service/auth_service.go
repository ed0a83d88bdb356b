package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

const minPasswordLength = 6

// forgotPasswordMessage is returned for every forgot-password request,
// whether or not the email exists, to resist account enumeration.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent"

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, email string, passwordHash string) (model.User, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

type AuthService struct {
	users            UserRepo
	hasher           *PasswordHasher
	tokens           *TokenService
	resets           *ResetTokenService
	exposeResetToken bool
}

func NewAuthService(users UserRepo, hasher *PasswordHasher, tokens *TokenService, resets *ResetTokenService, exposeResetToken bool) *AuthService {
	return &AuthService{
		users:            users,
		hasher:           hasher,
		tokens:           tokens,
		resets:           resets,
		exposeResetToken: exposeResetToken,
	}
}

func (s *AuthService) Register(ctx context.Context, email string, password string) (model.PublicUser, error) {
	email = strings.TrimSpace(email)

	if !strings.Contains(email, "@") {
		return model.PublicUser{}, apierror.BadRequest("invalid email format")
	}
	if len(password) < minPasswordLength {
		return model.PublicUser{}, apierror.BadRequest("password must be at least 6 characters long")
	}

	// Existence check first to avoid hashing for a known-taken email.
	// The unique constraint on insert remains the race-safety backstop.
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return model.PublicUser{}, apierror.Conflict("user with this email already exists")
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return model.PublicUser{}, fmt.Errorf("register lookup: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if errors.Is(err, model.ErrUserAlreadyExists) {
		return model.PublicUser{}, apierror.Conflict("user with this email already exists")
	}
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("register insert: %w", err)
	}

	return user.Public(), nil
}

// Login deliberately returns the same error for an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResponse{}, apierror.Unauthorized("invalid email or password")
	}
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("login lookup: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return model.LoginResponse{}, apierror.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("issue session token: %w", err)
	}

	return model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(sessionTTL.Seconds()),
		User:        user.Public(),
	}, nil
}

// ForgotPassword always succeeds with the same generic message. Lookup
// and persistence failures are logged and masked so response content
// never reveals whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (model.ForgotPasswordResponse, error) {
	resp := model.ForgotPasswordResponse{Message: forgotPasswordMessage}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			slog.Error("forgot-password lookup failed", "error", err)
		}
		return resp, nil
	}

	token, err := s.resets.Create(ctx, user.ID)
	if err != nil {
		slog.Error("reset token creation failed", "user_id", user.ID, "error", err)
		return resp, nil
	}

	if s.exposeResetToken {
		resp.ResetToken = token.Token
	}
	return resp, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apierror.BadRequest("password must be at least 6 characters long")
	}

	reset, err := s.resets.Redeem(ctx, token)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrResetTokenAlreadyUsed):
		return apierror.BadRequest("reset token has already been used")
	case errors.Is(err, model.ErrResetTokenNotFound), errors.Is(err, model.ErrResetTokenExpired):
		return apierror.BadRequest("invalid or expired reset token")
	default:
		return fmt.Errorf("redeem reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// The password change stands even if marking the token used fails;
	// a crash in this window permits token replay. Known weak point.
	if err := s.resets.MarkUsed(ctx, reset.Token); err != nil {
		slog.Error("failed to mark reset token used", "token_id", reset.ID, "error", err)
	}

	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.PublicUser{}, apierror.NotFound("user not found")
	}
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("find user by id: %w", err)
	}
	return user.Public(), nil
}
