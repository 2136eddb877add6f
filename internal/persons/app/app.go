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

	httpapi "github.com/aussiebroadwan/persons/internal/persons/http"
	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/internal/persons/store/drivers/postgres"
	"github.com/aussiebroadwan/persons/internal/persons/store/drivers/sqlite"
	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// Application is the persons API server with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	authService      *service.AuthService
	personService    *service.PersonService
	bootstrapService *service.BootstrapService
	seedService      *service.SeedService

	server *http.Server
	router *httpapi.Router
}

// New builds an Application. The database is opened and migrated before the
// keys are loaded, since persistent keys live in it.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "persons-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, err
	}

	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database ready", "driver", cfg.DatabaseDriver)

	keyManager, err := InitAuthKeys(ctx, cfg, db, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	app.initServices()

	if cfg.SeedDemoUser {
		created, err := app.seedService.EnsureDemoUser(slogx.WithContext(ctx, app.logger))
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to seed demo user: %w", err)
		}
		if created {
			app.logger.Info("demo user created", "email", service.DemoEmail)
		}
	}

	app.initHTTP()

	return app, nil
}

// OpenStore opens the configured database and applies migrations.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseDriver, err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Close releases the database without touching the HTTP server. It is for
// callers that only use Handler.
func (app *Application) Close() error { return app.db.Close() }

// Run starts the server and blocks until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.logger.Info("persons api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down persons api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownTimeout())
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("persons api stopped")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:          app.db,
		Keys:           app.keyManager,
		Verifier:       app.keyManager.Verifier,
		Issuer:         app.cfg.Issuer,
		Audience:       app.cfg.AudienceList(),
		TokenTTL:       app.cfg.TokenTTL(),
		StrictIdentity: app.cfg.StrictIdentity,
	}
	app.personService = &service.PersonService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Auth:  app.authService,
		Token: app.cfg.BootstrapToken,
	}
	app.seedService = &service.SeedService{Store: app.db}

	if app.bootstrapService.Enabled() {
		app.logger.Info("bootstrap endpoint enabled")
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.PersonService = app.personService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
