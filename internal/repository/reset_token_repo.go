package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-auth-service/internal/model"
)

type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

func (r *ResetTokenRepository) Insert(ctx context.Context, t *model.PasswordResetToken) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token, expires_at, used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Token, t.ExpiresAt, t.Used, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// FindByToken looks the token up by its exact value. Expiry and used
// checks belong to the service layer so their precedence stays in one
// place.
func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, used, created_at
		 FROM password_reset_tokens WHERE token = $1`, token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrResetTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return &t, nil
}

// MarkUsed is idempotent; marking an already-used token is not an error.
func (r *ResetTokenRepository) MarkUsed(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	return nil
}
