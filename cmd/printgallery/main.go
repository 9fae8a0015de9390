// Command printgallery runs the Print Gallery GraphQL API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/printgallery/internal/config"
	"github.com/deppfellow/printgallery/internal/database"
	"github.com/deppfellow/printgallery/internal/handler"
	"github.com/deppfellow/printgallery/internal/logger"
	"github.com/deppfellow/printgallery/internal/repository"
	"github.com/deppfellow/printgallery/internal/router"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/deppfellow/printgallery/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "printgallery",
		Short:        "GraphQL API for categories, images and users of 3D prints",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// bootstrap loads the config and builds the application logger. The
// returned LoggerService must be shut down by the caller.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to initialize New Relic: %w", err)
	}

	return cfg, loggerService, logger.NewLoggerWithService(cfg.Observability, loggerService), nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg, &log, loggerService)
			if err != nil {
				loggerService.Shutdown()
				log.Error().Err(err).Msg("failed to initialize server")
				return err
			}

			services, err := service.NewService(srv, repository.NewRepositories(srv))
			if err != nil {
				_ = srv.Shutdown(context.Background())
				return fmt.Errorf("could not create services: %w", err)
			}

			handlers, err := handler.NewHandlers(srv, services)
			if err != nil {
				_ = srv.Shutdown(context.Background())
				return err
			}

			srv.SetupHTTPServer(router.NewRouter(srv, handlers))

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					log.Error().Err(err).Msg("server stopped unexpectedly")
				}
				_ = srv.Shutdown(context.Background())
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations to PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				names, err := database.MigrationNames()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs database.driver=%s, got %q", config.DriverPostgres, cfg.Database.Driver)
			}

			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print the embedded migrations and exit")
	return cmd
}
