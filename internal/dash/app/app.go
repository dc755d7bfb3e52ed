package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/dash/internal/dash/http"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/internal/dash/store/drivers/sqlite"
	"github.com/aussiebroadwan/dash/internal/dash/ui"
	"github.com/aussiebroadwan/dash/pkg/cryptox"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the dashboard service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db *sqlite.Store

	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	userService         *service.UserService
	rolesService        *service.RolesService
	viewService         *service.HierarchyViewService
	activityService     *service.ActivityService
	preferencesService  *service.PreferencesService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "dash",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  os.Stderr,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg, logger: logger}

	signer, err := jwtx.NewSignerHS256([]byte(cfg.SessionSecret))
	if err != nil {
		return nil, err
	}
	app.signer = signer
	app.verifier = jwtx.NewVerifierHS256([]byte(cfg.SessionSecret), cfg.Issuer)

	db, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	app.initServices()
	if err := app.bootstrap(); err != nil {
		_ = db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// OpenStore sets the pepper path, opens the database and applies migrations.
func OpenStore(cfg Config, logger *slog.Logger) (*sqlite.Store, error) {
	cryptox.SetPepperPath(cfg.PepperFile)

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "file", cfg.DatabaseFile)
	return db, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until ctx ends, a shutdown signal
// arrives or the server fails.
func (app *Application) Run(ctx context.Context) error {
	app.housekeepingService.Start()

	app.logger.Info("dash starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down dash...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("dash stopped")
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.rolesService = &service.RolesService{Store: app.db}
	app.viewService = &service.HierarchyViewService{Store: app.db, Roles: app.rolesService}
	app.activityService = &service.ActivityService{Store: app.db}
	app.preferencesService = &service.PreferencesService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db, Users: app.userService}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.ActivityRetention,
		app.cfg.SessionTTL,
	)
}

// bootstrap creates the first admin when credentials are configured.
func (app *Application) bootstrap() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	if app.cfg.AdminUsername == "" {
		done, err := app.bootstrapService.IsBootstrapped(ctx)
		if err != nil {
			return err
		}
		if !done {
			app.logger.Warn("no users yet, set DASH_ADMIN_USERNAME and DASH_ADMIN_PASSWORD or run dash seed")
		}
		return nil
	}

	_, err := app.bootstrapService.Bootstrap(ctx, service.BootstrapData{
		AdminUsername: app.cfg.AdminUsername,
		AdminPassword: app.cfg.AdminPassword,
	})
	return err
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.cfg.RateLimits,
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.ViewService = app.viewService
	router.ActivityService = app.activityService
	router.PreferencesService = app.preferencesService
	router.UI = &ui.Handler{
		Users:       app.userService,
		Roles:       app.rolesService,
		View:        app.viewService,
		Activity:    app.activityService,
		Preferences: app.preferencesService,
		Verifier:    app.verifier,
		Limits:      app.cfg.RateLimits,
		Secure:      app.cfg.SecureCookies,
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
