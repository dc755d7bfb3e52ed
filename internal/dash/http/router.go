package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/internal/dash/ui"
	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/aussiebroadwan/dash/pkg/slogx"

	_ "github.com/aussiebroadwan/dash/api/dash" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	limits       httpx.RateLimits
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	UserService        *service.UserService
	RolesService       *service.RolesService
	ViewService        *service.HierarchyViewService
	ActivityService    *service.ActivityService
	PreferencesService *service.PreferencesService

	// UI serves the HTML dashboard. Nil leaves /ui unmounted.
	UI *ui.Handler
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	limits httpx.RateLimits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		limits:       limits.WithDefaults(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerRoles()
	r.registerActivity()
	r.registerPreferences()
	r.registerSystem()

	if r.UI != nil {
		ui.MountRoutes(r.Mux, r.UI)
		r.Mux.Handle("GET /{$}", http.RedirectHandler("/ui/roles", http.StatusSeeOther))
	}

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Dash Role Administration API
//	@version		0.1.0
//	@description	Manage a hierarchy of roles and their permissions, and review the audit log.
//	@description
//	@description				Roles form a forest through parent ids. Sign in at /v1/session and send the token as a bearer token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/dash
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSession() {
	h := &SessionHandler{UserService: r.UserService}

	// POST /session - strict rate limit (sign-in attempts)
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(h,
			r.limits.Login.PerIP(),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService, ViewService: r.ViewService}

	secured := func(next http.HandlerFunc, scope string, limit httpx.RateLimit) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier), // verify session token
			httpx.RequireAnyScope(scope),      // enforce scope
			limit.PerUser(),
		)
	}

	r.Mux.Handle("GET /v1/roles", secured(h.HandleList, domain.ScopeRolesView, r.limits.Read))
	r.Mux.Handle("GET /v1/roles/tree", secured(h.HandleTree, domain.ScopeRolesView, r.limits.Read))
	r.Mux.Handle("GET /v1/roles/{id}", secured(h.HandleGet, domain.ScopeRolesView, r.limits.Read))
	r.Mux.Handle("POST /v1/roles", secured(h.HandleCreate, domain.ScopeRolesCreate, r.limits.Write))
	r.Mux.Handle("PATCH /v1/roles/{id}", secured(h.HandleUpdate, domain.ScopeRolesUpdate, r.limits.Write))
	r.Mux.Handle("DELETE /v1/roles/{id}", secured(h.HandleDelete, domain.ScopeRolesDelete, r.limits.Write))
}

func (r *Router) registerActivity() {
	h := &ActivityHandler{ActivityService: r.ActivityService}

	r.Mux.Handle("GET /v1/activity",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeActivityView),
			r.limits.Read.PerUser(),
		),
	)
}

func (r *Router) registerPreferences() {
	h := &PreferencesHandler{PreferencesService: r.PreferencesService}

	// Any signed-in user may manage their own preferences
	r.Mux.Handle("GET /v1/preferences",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			r.limits.Read.PerUser(),
		),
	)
	r.Mux.Handle("PUT /v1/preferences",
		httpx.Chain(http.HandlerFunc(h.HandlePut),
			httpx.AuthnMiddleware(r.verifier),
			r.limits.Write.PerUser(),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.limits.Read.PerIP(),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			r.limits.Read.PerIP(),
		),
	)
}
