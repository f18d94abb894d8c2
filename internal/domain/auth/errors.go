package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrInvalidToken        = errors.New("Invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("Refresh token revoked")
	ErrEmailNotVerified    = errors.New("Google account email not verified")
)
