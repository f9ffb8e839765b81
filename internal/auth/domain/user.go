package domain

import "time"

type User struct {
	ID                     int
	Name                   string
	Email                  string
	PasswordHash           *string
	IsEmailVerified        bool
	EmailVerificationToken *string
	GoogleID               *string
	FacebookID             *string
	ProfilePicture         *string
	FailedLoginAttempts    int
	LastFailedLogin        *time.Time
	LockoutEnd             *time.Time
	LastLoginIP            string
	LastLoginUserAgent     string
	Role                   string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Locked reports whether a lockout window is still in effect at the given
// instant. Lockout is cleared only by the window elapsing or a subsequent
// successful login.
func (u *User) Locked(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

type RefreshToken struct {
	ID        int
	UserID    int
	Token     string
	DeviceID  string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

type LoginAttempt struct {
	ID          int
	UserID      *int
	Success     bool
	IPAddress   string
	UserAgent   string
	AttemptedAt time.Time
}

// Provider names a social identity provider.
type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

// ExternalIdentity is the normalized shape both provider verifiers produce.
// The upsert logic is written once against this, never against the raw
// provider payloads.
type ExternalIdentity struct {
	Provider   Provider
	ExternalID string
	Email      string
	Name       string
	PictureURL *string
}
