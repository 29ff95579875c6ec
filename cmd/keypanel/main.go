package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/joho/godotenv"

	googleadapter "github.com/ericfisherdev/keypanel/internal/adapter/driven/google"
	sqliteadapter "github.com/ericfisherdev/keypanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/keypanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/keypanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/config"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

const (
	rateLimitCapacity = 5
	rateLimitWindow   = time.Minute
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env if present, then configuration (fail fast on missing
	// required env vars).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"google_mode", cfg.GoogleMode,
		"dev_login", cfg.DevLogin,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	keyStore := sqliteadapter.NewAPIKeyRepo(db, cfg.SecretKey)
	resultStore := sqliteadapter.NewResultRepo(db)
	errorLogStore := sqliteadapter.NewErrorLogRepo(db)

	var factory driven.GoogleClientFactory
	if cfg.GoogleMode == config.GoogleModeMock {
		factory = googleadapter.NewMockFactory()
		slog.Info("google client in mock mode, no live API calls will be made")
	} else {
		factory = googleadapter.NewFactory()
	}

	// 6. Wire application services around one shared rate-limit bucket.
	bucket := application.NewTokenBucket(rateLimitCapacity, rateLimitWindow)
	keySvc := application.NewKeyService(keyStore)
	testSvc := application.NewTestService(factory, resultStore, errorLogStore, bucket,
		cfg.TestSpreadsheetID, cfg.TestEmailAddress, slog.Default())
	tokenSvc := application.NewTokenService(factory, cfg.TestSpreadsheetID)
	sessionSvc := application.NewSessionService(cfg.SessionSecret)

	// 7. Register API and GUI routes on one mux.
	mux := http.NewServeMux()

	apiHandler := httphandler.NewHandler(keySvc, testSvc, tokenSvc, sessionSvc,
		resultStore, errorLogStore, cfg.DevLogin, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware. CSRF guards browser-cookie sessions only.
	handler := webhandler.CSRFMiddleware(httphandler.SessionCookieName, mux)
	handler = httphandler.ApplyMiddleware(handler, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("keypanel started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
