package dashsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginAndScopeCheck(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/session":
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeInvalidCredentials, ErrorDescription: "nope"})
				return
			}
			_ = json.NewEncoder(w).Encode(SessionResponse{
				AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600,
				Scope: "roles:view activity:view", UserID: "u1", Username: req.Username, RoleID: 2,
			})
		case "/v1/roles":
			sawAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(ListRolesResponse{Roles: []RoleInfo{{ID: 1, Name: "Admin"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL + "/")
	ctx := context.Background()

	_, err := client.Login(ctx, "admin", "bad")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)

	session, err := client.Login(ctx, "admin", "pw")
	require.NoError(t, err)
	require.Equal(t, []string{"activity:view", "roles:view"}, session.Scopes())
	require.Equal(t, int64(2), session.RoleID())

	roles, err := session.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles.Roles, 1)
	require.Equal(t, "Bearer tok", sawAuth)

	err = session.DeleteRole(ctx, 1)
	require.ErrorContains(t, err, "roles:delete")
}

func TestExpiredSession(t *testing.T) {
	client := NewSDKClient("http://127.0.0.1:1")
	session := client.NewSessionFromToken("tok", []string{ScopeRolesView}, time.Now().Add(-time.Minute))

	_, err := session.ListRoles(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestActivityQueryValues(t *testing.T) {
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := ActivityQuery{Action: "login", Search: "alice", Since: since, Limit: 10}.values()

	require.Equal(t, "login", v.Get("action"))
	require.Equal(t, "alice", v.Get("q"))
	require.Equal(t, "2026-01-02T03:04:05Z", v.Get("since"))
	require.Equal(t, "10", v.Get("limit"))
	require.False(t, v.Has("status"))
}
