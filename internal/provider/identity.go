package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quickthumb/internal/errors"
)

const sessionDataPath = "/auth/v1/env/oauth/session-data"

// Profile is the identity returned by the external auth provider for a
// completed login.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityClient resolves an opaque external session id to a user profile.
// The provider protocol is an opaque collaborator; only success and the
// three profile fields matter here.
type IdentityClient interface {
	ResolveSession(ctx context.Context, sessionID string) (*Profile, error)
}

type identityClient struct {
	baseURL string
	http    *http.Client
}

// NewIdentityClient returns an HTTP-backed identity client.
func NewIdentityClient(baseURL string) IdentityClient {
	return &identityClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *identityClient) ResolveSession(ctx context.Context, sessionID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sessionDataPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build session-data request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errors.ErrUpstreamAuth, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", errors.ErrUpstreamAuth, err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: response missing email", errors.ErrUpstreamAuth)
	}
	return &profile, nil
}
