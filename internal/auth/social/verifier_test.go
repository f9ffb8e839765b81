package social

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelvault/auth-service/config"
	"github.com/pixelvault/auth-service/internal/auth/domain"
	autherror "github.com/pixelvault/auth-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()

	cfg := &config.Config{
		GoogleClientID:    "client-id.apps.googleusercontent.com",
		FacebookAppID:     "fb-app-id",
		FacebookAppSecret: "fb-app-secret",
	}

	return NewVerifier(cfg, zap.NewNop())
}

func TestVerifyGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token with full claims", func(t *testing.T) {
		v := newTestVerifier(t)
		v.validateGoogle = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			assert.Equal(t, "id-token", token)
			assert.Equal(t, "client-id.apps.googleusercontent.com", audience)
			return &idtoken.Payload{
				Subject: "google-sub-123",
				Claims: map[string]interface{}{
					"email":   "alice@example.com",
					"name":    "Alice",
					"picture": "https://lh3.example.com/photo.jpg",
				},
			}, nil
		}

		identity, err := v.VerifyGoogle(ctx, "id-token")
		require.NoError(t, err)
		assert.Equal(t, domain.ProviderGoogle, identity.Provider)
		assert.Equal(t, "google-sub-123", identity.ExternalID)
		assert.Equal(t, "alice@example.com", identity.Email)
		assert.Equal(t, "Alice", identity.Name)
		require.NotNil(t, identity.PictureURL)
		assert.Equal(t, "https://lh3.example.com/photo.jpg", *identity.PictureURL)
	})

	t.Run("no picture claim", func(t *testing.T) {
		v := newTestVerifier(t)
		v.validateGoogle = func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			return &idtoken.Payload{
				Subject: "google-sub-123",
				Claims:  map[string]interface{}{"email": "alice@example.com"},
			}, nil
		}

		identity, err := v.VerifyGoogle(ctx, "id-token")
		require.NoError(t, err)
		assert.Nil(t, identity.PictureURL)
	})

	t.Run("rejected token", func(t *testing.T) {
		v := newTestVerifier(t)
		v.validateGoogle = func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			return nil, errors.New("idtoken: audience provided does not match")
		}

		_, err := v.VerifyGoogle(ctx, "id-token")
		assert.ErrorIs(t, err, autherror.ErrInvalidSocialToken)
	})

	t.Run("missing email claim", func(t *testing.T) {
		v := newTestVerifier(t)
		v.validateGoogle = func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Subject: "google-sub-123", Claims: map[string]interface{}{}}, nil
		}

		_, err := v.VerifyGoogle(ctx, "id-token")
		assert.ErrorIs(t, err, autherror.ErrInvalidSocialToken)
	})
}

// graphStub fakes the two facebook graph calls the verifier makes.
func graphStub(t *testing.T, isValid bool, profileJSON string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/debug_token":
			assert.Equal(t, "fb-token", r.URL.Query().Get("input_token"))
			assert.Equal(t, "fb-app-id|fb-app-secret", r.URL.Query().Get("access_token"))
			fmt.Fprintf(w, `{"data":{"is_valid":%t}}`, isValid)
		case "/me":
			assert.Equal(t, "id,name,email,picture", r.URL.Query().Get("fields"))
			fmt.Fprint(w, profileJSON)
		default:
			t.Errorf("unexpected graph call: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestVerifyFacebook(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		server := graphStub(t, true,
			`{"id":"fb-456","name":"Alice","email":"alice@example.com","picture":{"data":{"url":"https://graph.example.com/photo.jpg"}}}`)
		defer server.Close()

		v := newTestVerifier(t)
		v.graphBaseURL = server.URL

		identity, err := v.VerifyFacebook(ctx, "fb-token")
		require.NoError(t, err)
		assert.Equal(t, domain.ProviderFacebook, identity.Provider)
		assert.Equal(t, "fb-456", identity.ExternalID)
		assert.Equal(t, "alice@example.com", identity.Email)
		assert.Equal(t, "Alice", identity.Name)
		require.NotNil(t, identity.PictureURL)
		assert.Equal(t, "https://graph.example.com/photo.jpg", *identity.PictureURL)
	})

	t.Run("token reported invalid", func(t *testing.T) {
		server := graphStub(t, false, `{}`)
		defer server.Close()

		v := newTestVerifier(t)
		v.graphBaseURL = server.URL

		_, err := v.VerifyFacebook(ctx, "fb-token")
		assert.ErrorIs(t, err, autherror.ErrInvalidSocialToken)
	})

	t.Run("profile missing email", func(t *testing.T) {
		server := graphStub(t, true, `{"id":"fb-456","name":"Alice"}`)
		defer server.Close()

		v := newTestVerifier(t)
		v.graphBaseURL = server.URL

		_, err := v.VerifyFacebook(ctx, "fb-token")
		assert.ErrorIs(t, err, autherror.ErrInvalidSocialToken)
	})

	t.Run("graph returns non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		v := newTestVerifier(t)
		v.graphBaseURL = server.URL

		_, err := v.VerifyFacebook(ctx, "fb-token")
		assert.ErrorIs(t, err, autherror.ErrInvalidSocialToken)
	})

	t.Run("graph unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		v := newTestVerifier(t)
		v.graphBaseURL = server.URL

		_, err := v.VerifyFacebook(ctx, "fb-token")
		assert.ErrorIs(t, err, autherror.ErrExternalService)
	})

	t.Run("malformed provider response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		defer server.Close()

		v := newTestVerifier(t)
		v.graphBaseURL = server.URL

		_, err := v.VerifyFacebook(ctx, "fb-token")
		assert.ErrorIs(t, err, autherror.ErrExternalService)
	})
}
