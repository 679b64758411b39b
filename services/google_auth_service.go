package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultTokenInfoBaseURL = "https://oauth2.googleapis.com"

// GoogleClaims is the subset of the ID-token payload this backend
// needs to create or look up a user.
type GoogleClaims struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

type GoogleAuthService struct {
	clientID string
	baseURL  string
	client   *http.Client
}

func NewGoogleAuthService() *GoogleAuthService {
	return &GoogleAuthService{
		clientID: os.Getenv("GOOGLE_WEB_CLIENT_ID"),
		baseURL:  defaultTokenInfoBaseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyIDToken validates a Google sign-in ID token against the
// tokeninfo endpoint and checks that it was issued for this app.
func (s *GoogleAuthService) VerifyIDToken(ctx context.Context, idToken string) (*GoogleClaims, error) {
	u := fmt.Sprintf("%s/tokeninfo?id_token=%s", s.baseURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokeninfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid Google token: tokeninfo status %d", resp.StatusCode)
	}

	var claims GoogleClaims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo JSON: %w", err)
	}

	if s.clientID != "" && claims.Aud != s.clientID {
		return nil, fmt.Errorf("invalid Google token: audience mismatch")
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("invalid Google token: no email in payload")
	}
	return &claims, nil
}
