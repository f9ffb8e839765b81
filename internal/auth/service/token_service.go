package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/pixelvault/auth-service/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pixelvault/auth-service/config"
	"github.com/pixelvault/auth-service/internal/auth/domain"
	autherror "github.com/pixelvault/auth-service/internal/errors"
	"github.com/pixelvault/auth-service/pkg/constant"
)

type TokenGenerator interface {
	GenerateAccessToken(user *domain.User) (string, error)
	ValidateAccessToken(tokenString string) (string, error)
	NewRefreshToken(userID int, deviceID string) *domain.RefreshToken
	AccessCookie(token string) *fiber.Cookie
	RefreshCookie(token string) *fiber.Cookie
	ClearCookie(name string) *fiber.Cookie
}

type TokenService struct {
	Key           string
	Issuer        string
	Audience      string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	ClockSkew     time.Duration
	CookieSecure  bool
}

type AccessTokenClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		Key:           cfg.JWTKey,
		Issuer:        cfg.JWTIssuer,
		Audience:      cfg.JWTAudience,
		AccessExpiry:  time.Duration(cfg.AccessExpiryMin) * time.Minute,
		RefreshExpiry: time.Duration(cfg.RefreshExpiryDays) * 24 * time.Hour,
		ClockSkew:     time.Duration(cfg.ClockSkewMin) * time.Minute,
		CookieSecure:  cfg.CookieSecure,
	}
}

// GenerateAccessToken signs a short-lived token carrying the user's email as
// subject, a unique jti and the display name.
func (ts *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := AccessTokenClaims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.NewString(),
			Issuer:    ts.Issuer,
			Audience:  jwt.ClaimStrings{ts.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Key))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, nil
}

// ValidateAccessToken verifies signature, issuer, audience and lifetime and
// returns the subject email. Every failure collapses into
// ErrInvalidAccessToken so callers can uniformly fall back to refresh.
func (ts *TokenService) ValidateAccessToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", autherror.ErrInvalidAccessToken
	}

	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Key), nil
	},
		jwt.WithIssuer(ts.Issuer),
		jwt.WithAudience(ts.Audience),
		jwt.WithLeeway(ts.ClockSkew),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", autherror.ErrInvalidAccessToken
	}

	return claims.Subject, nil
}

// NewRefreshToken builds an opaque long-lived token record bound to the
// caller's device. Persistence is the caller's responsibility.
func (ts *TokenService) NewRefreshToken(userID int, deviceID string) *domain.RefreshToken {
	now := time.Now()

	return &domain.RefreshToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		DeviceID:  deviceID,
		ExpiresAt: now.Add(ts.RefreshExpiry),
		Revoked:   false,
		CreatedAt: now,
	}
}

func (ts *TokenService) AccessCookie(token string) *fiber.Cookie {
	return ts.cookie(constant.AccessTokenCookie, token, time.Now().Add(ts.AccessExpiry))
}

func (ts *TokenService) RefreshCookie(token string) *fiber.Cookie {
	return ts.cookie(constant.RefreshTokenCookie, token, time.Now().Add(ts.RefreshExpiry))
}

// ClearCookie expires a cookie using the exact attribute set it was issued
// with; mismatched attributes on deletion can leave stale cookies in some
// clients.
func (ts *TokenService) ClearCookie(name string) *fiber.Cookie {
	return ts.cookie(name, "", time.Unix(0, 0))
}

func (ts *TokenService) cookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   ts.CookieSecure,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}
