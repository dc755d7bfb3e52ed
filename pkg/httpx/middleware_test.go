package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("k", jwtx.MinSecretLength))

func signedToken(t *testing.T, scopes ...string) string {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	token, err := signer.Sign(jwtx.NewSessionClaims("user-1", "sess-1", scopes,
		time.Hour, "dash", "admin", "Admin", 1, time.Now()))
	require.NoError(t, err)
	return token
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	verifier := jwtx.NewVerifierHS256(secret, "dash")

	var got jwtx.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := httpx.AuthnMiddleware(verifier)(next)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/roles", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/roles", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "roles:view"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "sess-1", got.SID)
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/roles", nil)
		req.AddCookie(&http.Cookie{Name: httpx.SessionCookieName, Value: signedToken(t)})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/roles", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSessionMiddlewareRedirects(t *testing.T) {
	verifier := jwtx.NewVerifierHS256(secret, "dash")
	h := httpx.SessionMiddleware(verifier, "/ui/login")(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui/roles?zoom=1", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/ui/login?next=%2Fui%2Froles%3Fzoom%3D1", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/ui/roles", nil)
	req.AddCookie(&http.Cookie{Name: httpx.SessionCookieName, Value: signedToken(t)})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAnyScope(t *testing.T) {
	h := httpx.RequireAnyScope("roles:update", "roles:create")(okHandler())

	t.Run("allowed", func(t *testing.T) {
		claims := jwtx.Claims{Scopes: []string{"roles:view", "roles:update"}}
		req := httptest.NewRequest(http.MethodPatch, "/v1/roles/1", nil)
		req = req.WithContext(httpx.ContextWithClaims(req.Context(), claims))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		claims := jwtx.Claims{Scopes: []string{"roles:view"}}
		req := httptest.NewRequest(http.MethodPatch, "/v1/roles/1", nil)
		req = req.WithContext(httpx.ContextWithClaims(req.Context(), claims))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `scope="roles:update roles:create"`)
	})
}
