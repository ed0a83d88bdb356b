package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Session token errors
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	// Reset token errors
	ErrResetTokenNotFound    = errors.New("reset token not found")
	ErrResetTokenExpired     = errors.New("reset token expired")
	ErrResetTokenAlreadyUsed = errors.New("reset token already used")
)
