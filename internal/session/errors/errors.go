package errors

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrDemoLoginDisabled  = errors.New("demo login is disabled")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrRoleMismatch       = errors.New("account does not have the requested role")
)
