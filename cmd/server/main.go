package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/copywriter/internal/auth"
	"github.com/mmynk/copywriter/internal/config"
	"github.com/mmynk/copywriter/internal/generator"
	"github.com/mmynk/copywriter/internal/metrics"
	"github.com/mmynk/copywriter/internal/service"
	"github.com/mmynk/copywriter/internal/storage/sqlite"
	"github.com/mmynk/copywriter/internal/web"
	"github.com/mmynk/copywriter/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "copywriter",
		Short:        "Generate, store and edit product descriptions",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadStorage()
			if err != nil {
				return err
			}
			logging.Setup(cfg.Log.Level)

			store, err := sqlite.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			slog.Info("Migrations applied", "database", cfg.Database.Path)
			return nil
		},
	}

	root.AddCommand(serve, migrate)
	root.RunE = serve.RunE
	return root
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := logging.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	m := metrics.New()
	gen := generator.New(cfg.OpenAI.Generator(), logger)

	srv, err := web.NewServer(web.Deps{
		Authenticator: auth.NewPasswordAuthenticator(store),
		Users:         store,
		Sessions:      auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL),
		Descriptions:  service.NewDescriptionService(store, gen, m),
		Cookie:        web.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Metrics:       m,
		Health:        store,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build web server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(srv.Routes(), &http2.Server{}),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.Server.Addr, "model", cfg.OpenAI.Model)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}
