// Package social verifies provider-issued tokens (Google ID tokens, Facebook
// access tokens) and normalizes the provider payloads into a single
// ExternalIdentity shape.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pixelvault/auth-service/config"
	"github.com/pixelvault/auth-service/internal/auth/domain"
	autherror "github.com/pixelvault/auth-service/internal/errors"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

const defaultGraphBaseURL = "https://graph.facebook.com"

// googleValidator matches idtoken.Validate so tests can stub the Google
// verification step.
type googleValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type Verifier struct {
	cfg            *config.Config
	httpClient     *http.Client
	logger         *zap.Logger
	graphBaseURL   string
	validateGoogle googleValidator
}

func NewVerifier(cfg *config.Config, logger *zap.Logger) *Verifier {
	return &Verifier{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		logger:         logger.Named("social_verifier"),
		graphBaseURL:   defaultGraphBaseURL,
		validateGoogle: idtoken.Validate,
	}
}

// VerifyGoogle checks the ID token's signature chain, expiry and audience
// against the configured client id, then normalizes the payload. Verification
// itself is delegated to Google's published procedure via the idtoken
// package.
func (v *Verifier) VerifyGoogle(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	payload, err := v.validateGoogle(ctx, token, v.cfg.GoogleClientID)
	if err != nil {
		v.logger.Warn("google id token rejected", zap.Error(err))
		return nil, autherror.ErrInvalidSocialToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" || payload.Subject == "" {
		return nil, autherror.ErrInvalidSocialToken
	}

	name, _ := payload.Claims["name"].(string)
	identity := &domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ExternalID: payload.Subject,
		Email:      email,
		Name:       name,
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		identity.PictureURL = &picture
	}

	return identity, nil
}

type facebookDebugTokenResponse struct {
	Data struct {
		IsValid bool `json:"is_valid"`
	} `json:"data"`
}

type facebookProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// VerifyFacebook confirms the token against the graph debug endpoint using
// the app credentials, then fetches the profile and normalizes it.
func (v *Verifier) VerifyFacebook(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	debugURL := fmt.Sprintf("%s/debug_token?input_token=%s&access_token=%s",
		v.graphBaseURL,
		url.QueryEscape(token),
		url.QueryEscape(v.cfg.FacebookAppID+"|"+v.cfg.FacebookAppSecret))

	var debug facebookDebugTokenResponse
	if err := v.getJSON(ctx, debugURL, &debug); err != nil {
		return nil, err
	}
	if !debug.Data.IsValid {
		v.logger.Warn("facebook token reported invalid by debug endpoint")
		return nil, autherror.ErrInvalidSocialToken
	}

	profileURL := fmt.Sprintf("%s/me?fields=id,name,email,picture&access_token=%s",
		v.graphBaseURL, url.QueryEscape(token))

	var profile facebookProfile
	if err := v.getJSON(ctx, profileURL, &profile); err != nil {
		return nil, err
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, autherror.ErrInvalidSocialToken
	}

	identity := &domain.ExternalIdentity{
		Provider:   domain.ProviderFacebook,
		ExternalID: profile.ID,
		Email:      profile.Email,
		Name:       profile.Name,
	}
	if profile.Picture.Data.URL != "" {
		pictureURL := profile.Picture.Data.URL
		identity.PictureURL = &pictureURL
	}

	return identity, nil
}

// getJSON performs a provider call scoped to the request context. Transport
// and decode failures surface as ErrExternalService; provider internals stay
// in the logs, never in client-facing messages.
func (v *Verifier) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error("provider request failed", zap.Error(err))
		return autherror.ErrExternalService
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("provider returned non-OK status", zap.Int("status", resp.StatusCode))
		return autherror.ErrInvalidSocialToken
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		v.logger.Error("failed to decode provider response", zap.Error(err))
		return autherror.ErrExternalService
	}

	return nil
}
