// Command recipefinder serves the recipe finder GUI and JSON API on a
// loopback listener backed by a local SQLite key-value store.
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

	geminiadapter "github.com/ericfisherdev/recipefinder/internal/adapter/driven/gemini"
	sqliteadapter "github.com/ericfisherdev/recipefinder/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/recipefinder/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/recipefinder/internal/adapter/driving/web"
	"github.com/ericfisherdev/recipefinder/internal/application"
	"github.com/ericfisherdev/recipefinder/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on a missing API key).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"model", cfg.GeminiModel,
		"revalidate_session", cfg.RevalidateSession,
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
	slog.Info("database opened", "path", db.Path())

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	kv := sqliteadapter.NewKVRepo(db)
	credentialStore := sqliteadapter.NewCredentialRepo(kv)
	sessionStore := sqliteadapter.NewSessionRepo(kv)

	recipeModel, err := geminiadapter.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint)
	if err != nil {
		return err
	}
	slog.Info("gemini client created", "model", recipeModel.Model())

	// 6. Create services and restore the persisted session.
	sessionSvc := application.NewSessionService(credentialStore, sessionStore, cfg.RevalidateSession, slog.Default())
	recipeSvc := application.NewRecipeService(recipeModel, slog.Default())

	identity, err := sessionSvc.RestoreSession(ctx)
	if err != nil {
		return err
	}
	if identity != nil {
		slog.Info("session restored", "email", identity.Email)
	}

	// 7. Register API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(sessionSvc, recipeSvc, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(sessionSvc, recipeSvc, slog.Default()))

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	// WriteTimeout leaves room for a slow model reply; the services impose
	// no deadline of their own.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	slog.Info("recipefinder started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err, ok := <-serveErr:
		if ok {
			return err
		}
	}

	// 9. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
