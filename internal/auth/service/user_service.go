package service

//go:generate mockgen -destination=../../mocks/mock_social_verifier.go -package=mocks github.com/pixelvault/auth-service/internal/auth/service SocialVerifier
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/pixelvault/auth-service/internal/auth/service Mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixelvault/auth-service/config"
	"github.com/pixelvault/auth-service/internal/auth/domain"
	"github.com/pixelvault/auth-service/internal/auth/dto"
	autherror "github.com/pixelvault/auth-service/internal/errors"
	"github.com/pixelvault/auth-service/pkg/constant"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SocialVerifier checks a provider-issued token and normalizes the payload
// into an ExternalIdentity before any store access happens.
type SocialVerifier interface {
	VerifyGoogle(ctx context.Context, token string) (*domain.ExternalIdentity, error)
	VerifyFacebook(ctx context.Context, token string) (*domain.ExternalIdentity, error)
}

type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
}

type UserService struct {
	repo     domain.UserRepository
	tokens   TokenGenerator
	verifier SocialVerifier
	mailer   Mailer
	cfg      *config.Config
	logger   *zap.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, verifier SocialVerifier,
	mailer Mailer, cfg *config.Config, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		verifier: verifier,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger.Named("user_service"),
	}
}

// LoginResult carries the issued credentials back to the handler, which turns
// them into cookies. RefreshToken is nil when the caller did not ask to stay
// logged in.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken *domain.RefreshToken
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	passwordHash := string(hashed)
	verificationToken := uuid.NewString()

	user := &domain.User{
		Name:                   input.Name,
		Email:                  input.Email,
		PasswordHash:           &passwordHash,
		IsEmailVerified:        false,
		EmailVerificationToken: &verificationToken,
		Role:                   constant.DefaultRole,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, verificationToken); err != nil {
		s.logger.Error("failed to send verification email", zap.String("email", user.Email), zap.Error(err))
		return nil, autherror.ErrExternalService
	}

	return user, nil
}

// Login runs the credential state machine: lookup, password verify with
// lockout accounting, lockout gate, verified-email gate, then token issuance.
// The lockout check deliberately sits after password verification; a correct
// password during an active lockout is still rejected and recorded.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*LoginResult, error) {
	now := time.Now()

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Never reveal whether the email exists.
		s.recordAttempt(ctx, nil, input.IPAddress, input.UserAgent, false)
		return nil, autherror.ErrInvalidCredentials
	}

	if !passwordMatches(user.PasswordHash, input.Password) {
		attempts := user.FailedLoginAttempts + 1
		lockoutEnd := user.LockoutEnd
		if attempts >= s.cfg.LoginMaxAttempts && !user.Locked(now) {
			end := now.Add(time.Duration(s.cfg.LockoutMinutes) * time.Minute)
			lockoutEnd = &end
		}
		if err := s.repo.RecordFailedLogin(ctx, user.ID, attempts, now, lockoutEnd); err != nil {
			s.logger.Warn("failed to update lockout counters", zap.Int("user_id", user.ID), zap.Error(err))
		}
		s.recordAttempt(ctx, &user.ID, input.IPAddress, input.UserAgent, false)

		return nil, autherror.ErrInvalidCredentials
	}

	if user.Locked(now) {
		s.recordAttempt(ctx, &user.ID, input.IPAddress, input.UserAgent, false)
		return nil, autherror.ErrAccountLocked
	}

	if !user.IsEmailVerified {
		s.recordAttempt(ctx, &user.ID, input.IPAddress, input.UserAgent, false)
		return nil, autherror.ErrEmailNotVerified
	}

	if err := s.repo.RecordSuccessfulLogin(ctx, user.ID, input.IPAddress, input.UserAgent); err != nil {
		return nil, err
	}
	s.recordAttempt(ctx, &user.ID, input.IPAddress, input.UserAgent, true)

	return s.issueTokens(ctx, user, input.StayLoggedIn, input.DeviceID)
}

func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return autherror.ErrInvalidVerificationToken
	}

	user, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrInvalidVerificationToken
	}

	return s.repo.MarkEmailVerified(ctx, user.ID)
}

func (s *UserService) GoogleLogin(ctx context.Context, input dto.SocialLoginInput) (*LoginResult, error) {
	identity, err := s.verifier.VerifyGoogle(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	return s.socialLogin(ctx, identity, input)
}

func (s *UserService) FacebookLogin(ctx context.Context, input dto.SocialLoginInput) (*LoginResult, error) {
	identity, err := s.verifier.VerifyFacebook(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	return s.socialLogin(ctx, identity, input)
}

// socialLogin upserts a user from a normalized external identity. Match by
// provider id first, then by email; an email-only match adopts the provider
// id instead of creating a duplicate account.
func (s *UserService) socialLogin(ctx context.Context, identity *domain.ExternalIdentity,
	input dto.SocialLoginInput) (*LoginResult, error) {
	user, err := s.repo.GetBySocialIDOrEmail(ctx, identity.Provider, identity.ExternalID, identity.Email)
	if err != nil {
		return nil, err
	}

	switch {
	case user == nil:
		now := time.Now()
		user = &domain.User{
			Name:            identity.Name,
			Email:           identity.Email,
			IsEmailVerified: true,
			ProfilePicture:  identity.PictureURL,
			Role:            constant.DefaultRole,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		setProviderID(user, identity)
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
	case providerID(user, identity.Provider) == nil:
		if err := s.repo.AttachSocialIdentity(ctx, user.ID, identity.Provider,
			identity.ExternalID, identity.PictureURL); err != nil {
			return nil, err
		}
		setProviderID(user, identity)
		user.IsEmailVerified = true
		if identity.PictureURL != nil {
			user.ProfilePicture = identity.PictureURL
		}
	}

	if err := s.repo.RecordSuccessfulLogin(ctx, user.ID, input.IPAddress, input.UserAgent); err != nil {
		return nil, err
	}
	s.recordAttempt(ctx, &user.ID, input.IPAddress, input.UserAgent, true)

	return s.issueTokens(ctx, user, input.StayLoggedIn, input.DeviceID)
}

// Refresh rotates the presented token: the old record is revoked before the
// replacement is stored, so the old token is dead even if the insert fails.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*LoginResult, error) {
	token, err := s.repo.GetRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}
	if token.Revoked {
		return nil, autherror.ErrRefreshTokenRevoked
	}
	if token.DeviceID != input.DeviceID {
		return nil, autherror.ErrDeviceMismatch
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	if err := s.repo.RevokeRefreshToken(ctx, token.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke token: %w", err)
	}

	user, err := s.repo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return s.issueTokens(ctx, user, true, input.DeviceID)
}

// SilentRefresh issues a fresh access token against a still-valid refresh
// token without rotating it. Device scoping applies only when the caller sent
// a device id. Used by the session middleware's single fallback attempt.
func (s *UserService) SilentRefresh(ctx context.Context, refreshToken, deviceID string) (string, string, error) {
	token, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	if token == nil {
		return "", "", autherror.ErrRefreshTokenNotFound
	}
	if token.Revoked {
		return "", "", autherror.ErrRefreshTokenRevoked
	}
	if deviceID != "" && token.DeviceID != deviceID {
		return "", "", autherror.ErrDeviceMismatch
	}
	if time.Now().After(token.ExpiresAt) {
		return "", "", autherror.ErrRefreshTokenExpired
	}

	user, err := s.repo.GetByID(ctx, token.UserID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", autherror.ErrUserNotFound
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, user.Email, nil
}

// Logout revokes the presented refresh token. Missing or already-revoked
// tokens are not errors; logout is idempotent.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	token, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if token == nil || token.Revoked {
		return nil
	}

	return s.repo.RevokeRefreshToken(ctx, token.ID)
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*dto.ProfileOutput, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return &dto.ProfileOutput{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
	}, nil
}

func (s *UserService) UpdateProfilePicture(ctx context.Context, email, picture string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	if picture == "" {
		return s.repo.UpdateProfilePicture(ctx, user.ID, nil)
	}
	if !validBase64Image(picture) {
		return autherror.ErrInvalidImageFormat
	}

	return s.repo.UpdateProfilePicture(ctx, user.ID, &picture)
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User, stayLoggedIn bool,
	deviceID string) (*LoginResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	result := &LoginResult{User: user, AccessToken: accessToken}

	if stayLoggedIn {
		rt := s.tokens.NewRefreshToken(user.ID, deviceID)
		if err := s.repo.StoreRefreshToken(ctx, rt); err != nil {
			return nil, fmt.Errorf("failed to store refresh token: %w", err)
		}
		result.RefreshToken = rt
	}

	return result, nil
}

// recordAttempt appends to the audit log. Audit failures never block the
// login path itself.
func (s *UserService) recordAttempt(ctx context.Context, userID *int, ip, userAgent string, success bool) {
	attempt := &domain.LoginAttempt{
		UserID:      userID,
		Success:     success,
		IPAddress:   ip,
		UserAgent:   userAgent,
		AttemptedAt: time.Now(),
	}
	if err := s.repo.RecordLoginAttempt(ctx, attempt); err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
	}
}

// passwordMatches treats a missing hash (social-only account) and a malformed
// stored hash the same as a wrong password.
func passwordMatches(hash *string, password string) bool {
	if hash == nil {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) == nil
}

func providerID(user *domain.User, provider domain.Provider) *string {
	if provider == domain.ProviderGoogle {
		return user.GoogleID
	}

	return user.FacebookID
}

func setProviderID(user *domain.User, identity *domain.ExternalIdentity) {
	if identity.Provider == domain.ProviderGoogle {
		user.GoogleID = &identity.ExternalID
		return
	}
	user.FacebookID = &identity.ExternalID
}

func validBase64Image(s string) bool {
	if !strings.HasPrefix(s, "data:image/") {
		return false
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return false
	}

	mimeType := strings.TrimPrefix(strings.Split(parts[0], ";")[0], "data:")
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return false
	}

	_, err := base64.StdEncoding.DecodeString(parts[1])

	return err == nil
}
