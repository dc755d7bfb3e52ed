package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// SessionCookieName carries the signed session token for browser requests.
const SessionCookieName = "dash_session"

// AuthnMiddleware accepts a bearer token (API clients) and answers with an
// RFC 6750 error when it is missing or invalid.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				raw = cookieToken(r)
			}
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("session verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx := contextWithAuth(r.Context(), claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionMiddleware is the browser flavour: it reads the session cookie and
// redirects to loginPath when there is no valid session.
func SessionMiddleware(v jwtx.Verifier, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := cookieToken(r)
			if raw != "" {
				claims, err := v.Verify(raw)
				if err == nil {
					ctx := contextWithAuth(r.Context(), claims)
					ctx = slogx.With(ctx, "user_id", claims.Subject)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				slogx.FromContext(r.Context()).Debug("session cookie rejected", "err", err)
				ClearSessionCookie(w, false)
			}

			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

// SetSessionCookie stores the signed session token.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	SetSessionCookie(w, "", -1, secure)
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}

func cookieToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
