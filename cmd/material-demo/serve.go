package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-material-widgets/internal/demo"
	"github.com/goliatone/go-material-widgets/pkg/model"
	"github.com/goliatone/go-material-widgets/pkg/store"
)

type serveOptions struct {
	addr  string
	db    string
	grace time.Duration
}

func serveCmd(flags *globalFlags) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget showcase and the model form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, flags, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.db, "db", "material-demo.db", "SQLite database for model form records")
	cmd.Flags().DurationVar(&opts.grace, "grace", 5*time.Second, "graceful shutdown timeout")
	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, opts *serveOptions) error {
	logger, err := newLogger(flags.logLevel)
	if err != nil {
		return err
	}
	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	db, catalog, err := openDemoStore(ctx, logger, opts.db)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := newServer(logger, settings, db, catalog)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", opts.addr), slog.String("css", settings.CSS), slog.String("js", settings.JS))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("grace", opts.grace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}

// openDemoStore opens the record store and seeds the related tables.
func openDemoStore(ctx context.Context, logger *slog.Logger, path string) (*store.Store, *model.Catalog, error) {
	catalog, err := demo.Catalog()
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(ctx, path, store.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	if err := demo.Seed(ctx, db, catalog); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, catalog, nil
}
