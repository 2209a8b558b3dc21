package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	_ "github.com/just-nibble/commit-view/docs"
	"github.com/just-nibble/commit-view/internal/adapters/api"
	"github.com/just-nibble/commit-view/internal/adapters/db"
	routes "github.com/just-nibble/commit-view/internal/adapters/http"
	"github.com/just-nibble/commit-view/internal/adapters/http/handlers"
	"github.com/just-nibble/commit-view/internal/adapters/storage"
	"github.com/just-nibble/commit-view/internal/logger"
	"github.com/just-nibble/commit-view/internal/usecases"
	"github.com/just-nibble/commit-view/pkg/config"
	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the commit view HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Format)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// Initialize the database
	gormDB, err := storage.InitDB(cfg.Database.DSN())
	if err != nil {
		return err
	}

	snapshots := db.NewGormSnapshotStore(gormDB)
	gc := api.NewGitHubClient(cfg.GitHub.BaseURL, cfg.GitHub.Token, cfg.GitHub.Timeout)
	uc := usecases.NewCommitViewUsecase(gc, snapshots, nil, log.With("component", "usecase"))
	router := routes.NewRouter(handlers.NewCommitHandler(uc, log.With("component", "http")))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server is running on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
