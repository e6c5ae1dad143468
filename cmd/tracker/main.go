package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"vct-tracker/internal/config"
	"vct-tracker/internal/constants"
	fxmodules "vct-tracker/internal/fx"
	"vct-tracker/internal/server"
	"vct-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runTracker),
	).Run()
}

func runTracker(
	lc fx.Lifecycle,
	poller *service.Poller,
	feed *server.FeedServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: feed.Handler(),
	}

	pollCtx, stopPolling := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("feed server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("feed server failed")
				}
			}()
			go poller.Run(pollCtx)
			logger.Info().
				Dur("interval", cfg.PollInterval).
				Msg("service started, data will be updated on every interval")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down")
			stopPolling()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("feed server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("stopped gracefully")
			return nil
		},
	})
}
