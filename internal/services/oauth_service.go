package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fittrackapp/fittrack-backend/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleProfile is the subset of the userinfo response the backend needs.
type GoogleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HTTPClient allows substituting the userinfo transport in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GoogleOAuthService drives the authorization-code flow against Google and
// hands the verified profile to AuthService.FederatedLogin.
type GoogleOAuthService struct {
	oauth      *oauth2.Config
	httpClient HTTPClient
}

func NewGoogleOAuthService(cfg *config.Config) *GoogleOAuthService {
	return &GoogleOAuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.OAuthCallbackURL + "/auth/google/callback",
			Scopes:       []string{"email", "profile"},
		},
		httpClient: http.DefaultClient,
	}
}

// Configured reports whether Google credentials were provided.
func (s *GoogleOAuthService) Configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// AuthURL returns the Google consent-page URL carrying the given state.
func (s *GoogleOAuthService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleCallback exchanges the authorization code and fetches the profile.
func (s *GoogleOAuthService) HandleCallback(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return s.fetchProfile(ctx, token)
}

func (s *GoogleOAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google API returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode Google user response: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google profile carries no email")
	}

	return &profile, nil
}
