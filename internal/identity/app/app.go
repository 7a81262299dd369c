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

	httpapi "github.com/corrida-app/identity/internal/identity/http"
	"github.com/corrida-app/identity/internal/identity/service"
	"github.com/corrida-app/identity/internal/identity/storage"
	"github.com/corrida-app/identity/internal/identity/store"
	"github.com/corrida-app/identity/internal/identity/store/drivers/sqlite"
	"github.com/corrida-app/identity/pkg/jwtx"
	"github.com/corrida-app/identity/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the identity service together: config, database, token
// codec, document storage, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	codec    *jwtx.Codec
	uploader storage.Uploader

	authService *service.AuthService
	userService *service.UserService

	server *http.Server
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("IDENTITY_JWT_SECRET is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initStorage(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.codec = jwtx.NewCodec(cfg.JWTSecret, cfg.Issuer, cfg.TokenTTL)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully stops the HTTP server and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
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

	app.logger.Info("identity service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initStorage() error {
	if app.cfg.S3Bucket == "" {
		app.logger.Warn("no S3 bucket configured, documents stored in memory")
		app.uploader = storage.NewMemory()
		return nil
	}

	uploader, err := storage.NewS3(context.Background(), storage.S3Config{
		Bucket:    app.cfg.S3Bucket,
		Region:    app.cfg.S3Region,
		Endpoint:  app.cfg.S3Endpoint,
		AccessKey: app.cfg.S3AccessKey,
		SecretKey: app.cfg.S3SecretKey,
		PathStyle: app.cfg.S3PathStyle,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}
	app.uploader = uploader
	return nil
}

func (app *Application) initServices() {
	principal := &service.Principal{Store: app.db}

	app.authService = &service.AuthService{
		Store:    app.db,
		Codec:    app.codec,
		Uploader: app.uploader,
	}
	app.userService = &service.UserService{
		Store:     app.db,
		Principal: principal,
	}
}

func (app *Application) initHTTP() {
	handler := &httpapi.Handler{
		Auth:  app.authService,
		Users: app.userService,
		Codec: app.codec,
		Store: app.db,
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           httpapi.NewRouter(handler, app.logger),
		ReadHeaderTimeout: 3 * time.Second,
	}
}
