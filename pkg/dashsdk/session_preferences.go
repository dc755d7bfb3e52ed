package dashsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// GetPreferences returns the signed-in user's preferences.
func (s *Session) GetPreferences(ctx context.Context) (*Preferences, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/preferences", nil, nil)
	if err != nil {
		return nil, err
	}

	var out Preferences
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PutPreferences replaces the signed-in user's preferences.
func (s *Session) PutPreferences(ctx context.Context, p Preferences) (*Preferences, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/preferences", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out Preferences
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
