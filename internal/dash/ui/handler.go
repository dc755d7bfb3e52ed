package ui

import (
	"log/slog"
	"net/http"
	"strings"

	. "maragu.dev/gomponents"

	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// Handler serves the server-rendered dashboard under /ui.
type Handler struct {
	Users       *service.UserService
	Roles       *service.RolesService
	View        *service.HierarchyViewService
	Activity    *service.ActivityService
	Preferences *service.PreferencesService
	Verifier    jwtx.Verifier

	// Limits are the request budgets; zero profiles fall back to the defaults.
	Limits httpx.RateLimits

	// Secure marks cookies Secure. Off for plain-HTTP development.
	Secure bool
}

func claims(r *http.Request) jwtx.Claims {
	c, _ := httpx.ClaimsFromContext(r.Context())
	return c
}

func actor(r *http.Request) service.Actor {
	c := claims(r)
	return service.Actor{
		UserID:    c.Subject,
		Username:  c.Username,
		IPAddress: httpx.ClientIP(r),
	}
}

// chrome loads what every signed-in page shows around its content.
func (h *Handler) chrome(r *http.Request, title, active string) (Chrome, error) {
	c := claims(r)
	prefs, err := h.Preferences.Load(r.Context(), c.Subject)
	if err != nil {
		return Chrome{}, err
	}
	user := c.DisplayName
	if user == "" {
		user = c.Username
	}
	return Chrome{
		Title:  title,
		Active: active,
		User:   user,
		Scopes: c.Scopes,
		Prefs:  prefs,
		CSRF:   csrfField(r),
	}, nil
}

// page renders a signed-in page, or the error page when the chrome cannot
// be loaded.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, title, active string, body func(Chrome) Node) {
	c, err := h.chrome(r, title, active)
	if err != nil {
		serverError(w, r, "failed to load page chrome", err)
		return
	}
	Render(w, http.StatusOK, body(c))
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
	if httpx.WantsJSON(r) {
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "The request could not be completed.")
		return
	}
	Render(w, http.StatusInternalServerError, ErrorPage("Something went wrong", "The request could not be completed. Try again shortly."))
}

// requireScope is the browser counterpart of httpx.RequireAnyScope.
func requireScope(scope string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c := claims(r); !c.HasScope(scope) {
				Render(w, http.StatusForbidden, ErrorPage("Forbidden", "Your role does not grant "+scope+"."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// safeNext keeps redirects on this site's /ui pages.
func safeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/ui") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}
