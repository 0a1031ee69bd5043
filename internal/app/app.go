package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/DEVYESH-1211/campus-events/internal/config"
	jwtlib "github.com/DEVYESH-1211/campus-events/internal/lib/jwt"
	"github.com/DEVYESH-1211/campus-events/internal/lib/password"
	"github.com/DEVYESH-1211/campus-events/internal/migrations"
	"github.com/DEVYESH-1211/campus-events/internal/storage"
)

// App owns the HTTP server and its dependencies.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New connects to storage, applies migrations and builds the router.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	verifier, err := password.New(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}
	tokenMaker := jwtlib.NewMaker(cfg.SecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, tokenMaker, verifier, cfg.TokenTTL, cfg.AssetsDir)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
