package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/pixelvault/auth-service/config"
	"github.com/pixelvault/auth-service/internal/auth/domain"
	"github.com/pixelvault/auth-service/internal/auth/dto"
	"github.com/pixelvault/auth-service/internal/auth/handler"
	"github.com/pixelvault/auth-service/internal/auth/service"
	"github.com/pixelvault/auth-service/internal/mocks"
	"github.com/pixelvault/auth-service/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct-horse-battery"

type handlerFixture struct {
	app      *fiber.App
	repo     *mocks.MockUserRepository
	verifier *mocks.MockSocialVerifier
	mailer   *mocks.MockMailer
	tokens   *service.TokenService
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	verifier := mocks.NewMockSocialVerifier(ctrl)
	mailer := mocks.NewMockMailer(ctrl)

	cfg := &config.Config{
		JWTKey:            "test-signing-key-123",
		JWTIssuer:         "auth-service-test",
		JWTAudience:       "frontend-test",
		AccessExpiryMin:   5,
		RefreshExpiryDays: 30,
		ClockSkewMin:      2,
		CookieSecure:      true,
		LoginMaxAttempts:  5,
		LockoutMinutes:    15,
	}

	logger := zap.NewNop()
	tokens := service.NewTokenService(cfg)
	userService := service.NewUserService(repo, tokens, verifier, mailer, cfg, logger)

	app := fiber.New()
	handler.RegisterRoutes(app,
		handler.NewAuthHandler(userService, tokens, logger),
		handler.NewUserHandler(userService, logger))

	return &handlerFixture{app: app, repo: repo, verifier: verifier, mailer: mailer, tokens: tokens}
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

func decodeResponse(t *testing.T, resp *http.Response) dto.Response {
	t.Helper()

	var out dto.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func hashPassword(t *testing.T, password string) *string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hashed)

	return &s
}

func verifiedUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:              1,
		Name:            "Alice",
		Email:           "alice@example.com",
		PasswordHash:    hashPassword(t, testPassword),
		IsEmailVerified: true,
		Role:            "customer",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().SendVerificationEmail(gomock.Any(), "alice@example.com", "Alice", gomock.Any()).Return(nil)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/register",
			`{"name":"Alice","email":"alice@example.com","password":"secret123"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeResponse(t, resp)
		assert.True(t, body.Success)
		require.NotNil(t, body.Message)
		assert.Contains(t, *body.Message, "verify")
	})

	t.Run("validation failure", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/register",
			`{"name":"Alice","email":"not-an-email","password":"123"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeResponse(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, http.StatusBadRequest, body.StatusCode)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").
			Return(&domain.User{ID: 1, Email: "alice@example.com"}, nil)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/register",
			`{"name":"Alice","email":"alice@example.com","password":"secret123"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("sets access cookie only by default", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		f.repo.EXPECT().RecordSuccessfulLogin(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().RecordLoginAttempt(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"alice@example.com","password":"`+testPassword+`"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		access := responseCookie(resp, constant.AccessTokenCookie)
		require.NotNil(t, access)
		assert.True(t, access.HttpOnly)
		assert.True(t, access.Secure)
		assert.Equal(t, http.SameSiteNoneMode, access.SameSite)

		email, valErr := f.tokens.ValidateAccessToken(access.Value)
		require.NoError(t, valErr)
		assert.Equal(t, user.Email, email)

		assert.Nil(t, responseCookie(resp, constant.RefreshTokenCookie))
	})

	t.Run("stay logged in also sets refresh cookie", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		f.repo.EXPECT().RecordSuccessfulLogin(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().RecordLoginAttempt(gomock.Any(), gomock.Any()).Return(nil)

		var storedToken string
		f.repo.EXPECT().StoreRefreshToken(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rt *domain.RefreshToken) error {
				assert.Equal(t, "device-1", rt.DeviceID)
				storedToken = rt.Token
				rt.ID = 11
				return nil
			})

		req := jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"alice@example.com","password":"`+testPassword+`","stayLoggedIn":true}`)
		req.Header.Set(constant.DeviceIDHeader, "device-1")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		refresh := responseCookie(resp, constant.RefreshTokenCookie)
		require.NotNil(t, refresh)
		assert.Equal(t, storedToken, refresh.Value)
		assert.True(t, refresh.HttpOnly)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		f.repo.EXPECT().RecordFailedLogin(gomock.Any(), user.ID, 1, gomock.Any(), gomock.Nil()).Return(nil)
		f.repo.EXPECT().RecordLoginAttempt(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"alice@example.com","password":"wrong"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		assert.Nil(t, responseCookie(resp, constant.AccessTokenCookie))
	})
}

func TestVerifyEmailEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repo.EXPECT().GetByVerificationToken(gomock.Any(), "tok-1").Return(&domain.User{ID: 3}, nil)
		f.repo.EXPECT().MarkEmailVerified(gomock.Any(), 3).Return(nil)

		resp, err := f.app.Test(jsonRequest(http.MethodGet, "/auth/verify-email?token=tok-1", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := f.app.Test(jsonRequest(http.MethodGet, "/auth/verify-email", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGoogleLoginEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	googleID := "google-sub-123"
	user := verifiedUser(t)
	user.GoogleID = &googleID
	identity := &domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ExternalID: googleID,
		Email:      user.Email,
		Name:       user.Name,
	}

	f.verifier.EXPECT().VerifyGoogle(gomock.Any(), "provider-token").Return(identity, nil)
	f.repo.EXPECT().GetBySocialIDOrEmail(gomock.Any(), domain.ProviderGoogle, googleID, user.Email).Return(user, nil)
	f.repo.EXPECT().RecordSuccessfulLogin(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().RecordLoginAttempt(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/google-login", `{"token":"provider-token"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.True(t, body.Success)

	profile, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, user.Email, profile["email"])
	assert.Equal(t, user.Name, profile["name"])

	require.NotNil(t, responseCookie(resp, constant.AccessTokenCookie))
}

func TestRefreshEndpoint(t *testing.T) {
	t.Run("requires refresh cookie", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/refresh", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("requires device id header", func(t *testing.T) {
		f := newHandlerFixture(t)

		req := jsonRequest(http.MethodPost, "/auth/refresh", "")
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookie, Value: "opaque-old"})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rotates token and sets fresh cookies", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		token := &domain.RefreshToken{
			ID:        11,
			UserID:    user.ID,
			Token:     "opaque-old",
			DeviceID:  "device-1",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}

		f.repo.EXPECT().GetRefreshToken(gomock.Any(), "opaque-old").Return(token, nil)
		f.repo.EXPECT().RevokeRefreshToken(gomock.Any(), token.ID).Return(nil)
		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		f.repo.EXPECT().StoreRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

		req := jsonRequest(http.MethodPost, "/auth/refresh", "")
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookie, Value: "opaque-old"})
		req.Header.Set(constant.DeviceIDHeader, "device-1")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		require.NotNil(t, responseCookie(resp, constant.AccessTokenCookie))
		refresh := responseCookie(resp, constant.RefreshTokenCookie)
		require.NotNil(t, refresh)
		assert.NotEqual(t, "opaque-old", refresh.Value)
	})

	t.Run("failed rotation clears session cookies", func(t *testing.T) {
		f := newHandlerFixture(t)

		token := &domain.RefreshToken{ID: 11, UserID: 1, Token: "opaque-old", DeviceID: "device-1", Revoked: true}
		f.repo.EXPECT().GetRefreshToken(gomock.Any(), "opaque-old").Return(token, nil)

		req := jsonRequest(http.MethodPost, "/auth/refresh", "")
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookie, Value: "opaque-old"})
		req.Header.Set(constant.DeviceIDHeader, "device-1")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		access := responseCookie(resp, constant.AccessTokenCookie)
		require.NotNil(t, access)
		assert.Empty(t, access.Value)
		assert.True(t, access.Expires.Before(time.Now()))
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("revokes token and clears cookies", func(t *testing.T) {
		f := newHandlerFixture(t)

		token := &domain.RefreshToken{ID: 11, Token: "opaque"}
		f.repo.EXPECT().GetRefreshToken(gomock.Any(), "opaque").Return(token, nil)
		f.repo.EXPECT().RevokeRefreshToken(gomock.Any(), token.ID).Return(nil)

		req := jsonRequest(http.MethodPost, "/auth/logout", "")
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookie, Value: "opaque"})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		for _, name := range []string{constant.AccessTokenCookie, constant.RefreshTokenCookie} {
			c := responseCookie(resp, name)
			require.NotNil(t, c)
			assert.Empty(t, c.Value)
		}
	})

	t.Run("idempotent without a session", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/auth/logout", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestCheckEndpoint(t *testing.T) {
	t.Run("valid access cookie", func(t *testing.T) {
		f := newHandlerFixture(t)

		accessToken, err := f.tokens.GenerateAccessToken(verifiedUser(t))
		require.NoError(t, err)

		req := jsonRequest(http.MethodGet, "/auth/check", "")
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeResponse(t, resp)
		data, ok := body.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, data["isAuthenticated"])
	})

	t.Run("expired access token falls back to silent refresh", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		token := &domain.RefreshToken{
			ID:        11,
			UserID:    user.ID,
			Token:     "opaque",
			DeviceID:  "device-1",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}

		f.repo.EXPECT().GetRefreshToken(gomock.Any(), "opaque").Return(token, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		req := jsonRequest(http.MethodGet, "/auth/check", "")
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: "garbage"})
		req.AddCookie(&http.Cookie{Name: constant.RefreshTokenCookie, Value: "opaque"})
		req.Header.Set(constant.DeviceIDHeader, "device-1")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		access := responseCookie(resp, constant.AccessTokenCookie)
		require.NotNil(t, access)
		email, valErr := f.tokens.ValidateAccessToken(access.Value)
		require.NoError(t, valErr)
		assert.Equal(t, user.Email, email)
	})

	t.Run("no session at all", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := f.app.Test(jsonRequest(http.MethodGet, "/auth/check", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeResponse(t, resp)
		assert.False(t, body.Success)
	})
}

func TestProfileEndpoints(t *testing.T) {
	t.Run("get profile", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		accessToken, err := f.tokens.GenerateAccessToken(user)
		require.NoError(t, err)

		f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		req := jsonRequest(http.MethodGet, "/user/profile", "")
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeResponse(t, resp)
		profile, ok := body.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, user.Email, profile["email"])
	})

	t.Run("update profile picture", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		accessToken, err := f.tokens.GenerateAccessToken(user)
		require.NoError(t, err)

		picture := "data:image/png;base64,aGVsbG8="
		f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		f.repo.EXPECT().UpdateProfilePicture(gomock.Any(), user.ID, &picture).Return(nil)

		req := jsonRequest(http.MethodPost, "/user/profile/picture", `{"profilePicture":"`+picture+`"}`)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects invalid image payload", func(t *testing.T) {
		f := newHandlerFixture(t)

		user := verifiedUser(t)
		accessToken, err := f.tokens.GenerateAccessToken(user)
		require.NoError(t, err)

		f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		req := jsonRequest(http.MethodPost, "/user/profile/picture", `{"profilePicture":"not-an-image"}`)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := f.app.Test(jsonRequest(http.MethodGet, "/user/profile", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
