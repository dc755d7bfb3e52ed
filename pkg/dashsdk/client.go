package dashsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to a Dash server. It makes unauthenticated calls and
// creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes makes a Session refuse calls its scopes do not allow
	// before sending them. Turn it off in tests that exercise the server's
	// own scope checks.
	CheckScopes bool
}

// NewSDKClient creates a client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// Login signs in with a username and password.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/session", bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var sessionResp SessionResponse
	if err := decodeJSON(resp, &sessionResp, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, &sessionResp), nil
}

// NewSessionFromToken wraps a token obtained elsewhere. Scope checks are
// based on the scopes passed in.
func (c *SDKClient) NewSessionFromToken(token string, scopes []string, expiresAt time.Time) *Session {
	return &Session{
		client:      c,
		accessToken: token,
		expiresAt:   expiresAt,
		scopes:      parseScopes(strings.Join(scopes, " ")),
	}
}
