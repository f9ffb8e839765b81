package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/pixelvault/auth-service/internal/auth/domain UserRepository

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	GetBySocialIDOrEmail(ctx context.Context, provider Provider, externalID, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	RecordFailedLogin(ctx context.Context, userID, attempts int, lastFailed time.Time, lockoutEnd *time.Time) error
	RecordSuccessfulLogin(ctx context.Context, userID int, ip, userAgent string) error
	MarkEmailVerified(ctx context.Context, userID int) error
	AttachSocialIdentity(ctx context.Context, userID int, provider Provider, externalID string, pictureURL *string) error
	UpdateProfilePicture(ctx context.Context, userID int, picture *string) error
	StoreRefreshToken(ctx context.Context, rt *RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id int) error
	RecordLoginAttempt(ctx context.Context, attempt *LoginAttempt) error
}
