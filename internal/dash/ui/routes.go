package ui

import (
	"io/fs"
	"net/http"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/ui/assets"
	"github.com/aussiebroadwan/dash/pkg/httpx"
)

// MountRoutes registers the dashboard on mux. Every route carries the CSRF
// cookie; signed-in routes also require a session.
func MountRoutes(mux *http.ServeMux, h *Handler) {
	csrf := func(next http.HandlerFunc, mws ...httpx.Middleware) http.Handler {
		mws = append([]httpx.Middleware{h.EnsureCSRFToken, h.RequireCSRF}, mws...)
		return httpx.Chain(next, mws...)
	}
	session := httpx.SessionMiddleware(h.Verifier, "/ui/login")
	signedIn := func(next http.HandlerFunc, mws ...httpx.Middleware) http.Handler {
		return csrf(next, append([]httpx.Middleware{session}, mws...)...)
	}
	limits := h.Limits.WithDefaults()
	lenient := limits.Read.PerIP()

	mux.Handle("GET /ui/login", csrf(h.LoginPage, lenient))
	mux.Handle("POST /ui/login", csrf(h.LoginSubmit, limits.Login.PerIPAndField("username")))
	mux.Handle("POST /ui/logout", signedIn(h.Logout))

	if sub, err := fs.Sub(assets.StaticFS(), "static"); err == nil {
		mux.Handle("GET /ui/static/", http.StripPrefix("/ui/static/", http.FileServer(http.FS(sub))))
	}

	viewRoles := requireScope(domain.ScopeRolesView)
	mux.Handle("GET /ui", signedIn(h.Home))
	mux.Handle("GET /ui/{$}", signedIn(h.Home))
	mux.Handle("GET /ui/roles", signedIn(h.RolesPage, viewRoles, lenient))
	mux.Handle("GET /ui/roles/{id}", signedIn(h.RoleDetail, viewRoles, lenient))
	mux.Handle("POST /ui/roles/{id}/toggle", signedIn(h.RoleToggle, viewRoles, lenient))
	mux.Handle("POST /ui/roles/expand", signedIn(h.RolesExpandAll, viewRoles, lenient))
	mux.Handle("POST /ui/roles/collapse", signedIn(h.RolesCollapseAll, viewRoles, lenient))
	mux.Handle("POST /ui/roles/zoom", signedIn(h.RolesZoom, viewRoles, lenient))

	mux.Handle("GET /ui/activity", signedIn(h.ActivityPage, requireScope(domain.ScopeActivityView), lenient))

	mux.Handle("GET /ui/settings", signedIn(h.SettingsPage))
	mux.Handle("POST /ui/settings", signedIn(h.SettingsSubmit, limits.Write.PerIP()))
	mux.Handle("POST /ui/favorites/toggle", signedIn(h.FavoriteToggle, lenient))
}
