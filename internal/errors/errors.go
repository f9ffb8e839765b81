package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrAccountLocked            = errors.New("account locked due to too many failed login attempts")
	ErrEmailNotVerified         = errors.New("please verify your email before logging in")
	ErrEmailAlreadyInUse        = errors.New("email already in use")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrInvalidAccessToken       = errors.New("invalid access token")
	ErrRefreshTokenNotFound     = errors.New("refresh token not found")
	ErrRefreshTokenRevoked      = errors.New("refresh token revoked")
	ErrRefreshTokenExpired      = errors.New("refresh token expired")
	ErrDeviceMismatch           = errors.New("device id mismatch")
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidSocialToken       = errors.New("invalid social login token")
	ErrExternalService          = errors.New("external service unavailable")
	ErrInvalidImageFormat       = errors.New("invalid image format, must be a base64-encoded JPEG or PNG")
)
