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

	httpapi "github.com/aussiebroadwan/soundbooth/internal/soundbooth/http"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/identity"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store/drivers/postgres"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store/drivers/sqlite"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	startupTimeout = 30 * time.Second

	// multipartSlack is added to MAX_UPLOAD_BYTES for the HTTP body cap so a
	// file right at the limit still fits alongside the form headers. The
	// service enforces the exact file size.
	multipartSlack = 1 << 20
)

// Application holds the soundbooth service and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	blobs storage.Storage
	codec *jwtx.Codec

	sessionService    *service.SessionService
	accessGuard       *service.AccessGuard
	audioService      *service.AudioService
	supervisorService *service.SupervisorService
	yandex            *identity.Yandex

	server *http.Server
	router *httpapi.Router
}

// New wires the application. The database is migrated and configured
// supervisors are promoted before it returns.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "soundbooth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initStorage(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("soundbooth starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown drains in-flight requests, then closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down soundbooth...")

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

	app.logger.Info("soundbooth stopped")
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db     store.Store
		driver string
		err    error
	)
	if app.cfg.IsPostgres() {
		driver = "postgres"
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	} else {
		driver = "sqlite"
		db, err = sqlite.NewStore(app.cfg.DatabaseURL)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

func (app *Application) initStorage(ctx context.Context) error {
	switch app.cfg.StorageBackend {
	case StorageS3:
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:    app.cfg.S3Bucket,
			Region:    app.cfg.S3Region,
			Endpoint:  app.cfg.S3Endpoint,
			AccessKey: app.cfg.S3AccessKey,
			SecretKey: app.cfg.S3SecretKey,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure s3 bucket: %w", err)
		}
		app.blobs = s3
		app.logger.Info("storage ready", "backend", StorageS3, "bucket", app.cfg.S3Bucket)
	default:
		local, err := storage.NewLocal(app.cfg.MediaDir)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		app.blobs = local
		app.logger.Info("storage ready", "backend", StorageLocal, "dir", app.cfg.MediaDir)
	}
	return nil
}

func (app *Application) initServices(ctx context.Context) error {
	codec, err := jwtx.NewCodec(
		app.cfg.Algorithm,
		app.cfg.AccessSecretKey,
		app.cfg.RefreshSecretKey,
		app.cfg.AccessTTL(),
		app.cfg.RefreshTTL(),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	app.yandex = identity.NewYandex(identity.YandexConfig{
		ClientID:     app.cfg.YandexClientID,
		ClientSecret: app.cfg.YandexClientSecret,
		RedirectURI:  app.cfg.YandexRedirectURI,
		LoginURL:     app.cfg.YandexRedirectURL,
		Timeout:      app.cfg.YandexTimeout,
	})

	supervisors := service.NewSupervisorSet(app.cfg.SupervisorYandexIDs...)

	app.sessionService = &service.SessionService{
		Store:        app.db,
		Identity:     app.yandex,
		Tokens:       codec,
		Supervisors:  supervisors,
		RequireEmail: app.cfg.UserEmailRequired,
	}
	app.accessGuard = &service.AccessGuard{Store: app.db, Tokens: codec}
	app.audioService = &service.AudioService{
		Store:    app.db,
		Storage:  app.blobs,
		MaxBytes: app.cfg.MaxUploadBytes,
	}
	app.supervisorService = &service.SupervisorService{Store: app.db, Storage: app.blobs}

	if err := app.supervisorService.EnsureSupervisors(ctx, supervisors); err != nil {
		return fmt.Errorf("failed to promote supervisors: %w", err)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.blobs, app.logger)

	router.Limits = app.cfg.RateLimits
	router.MaxUploadBytes = app.cfg.MaxUploadBytes + multipartSlack
	router.AuthURL = app.yandex
	router.SessionService = app.sessionService
	router.AccessGuard = app.accessGuard
	router.AudioService = app.audioService
	router.SupervisorService = app.supervisorService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
