// Command server runs the storefront HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	app "github.com/shopworks/storefront/internal/app"
	"github.com/shopworks/storefront/internal/app/httpapi"
	"github.com/shopworks/storefront/internal/app/metrics"
	"github.com/shopworks/storefront/internal/app/storage/postgres"
	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/platform/migrations"
	"github.com/shopworks/storefront/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("server", cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores := app.Stores{}
	if cfg.Storage.Backend == config.BackendPostgres {
		db, err := postgres.Open(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()

		if err := migrations.Apply(ctx, db.DB); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}

		store := postgres.New(db)
		stores.Items = store
		stores.Users = store
		log.Info("using postgres storage")
	} else {
		log.Warn("using in-memory storage; nothing will survive a restart")
	}

	application := app.New(stores, log)
	handler := metrics.Instrument(httpapi.NewHandler(application, nil))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
