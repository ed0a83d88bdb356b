package model

import "time"

// PasswordResetToken is a short-lived, single-use token backing the
// forgot-password flow. Rows are never deleted by the service; retention
// is left to the database.
type PasswordResetToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
