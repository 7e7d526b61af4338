package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yourusername/store-assistant/internal/delivery/telegram"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, and the Telegram bot when a token is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := opts.bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.Logger
	cfg := a.Config

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      a.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Int("products", a.Catalog.Len()).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBotHandler(cfg.Telegram.Token, a.Chat, a.Products, cfg.Catalog.Currency, logger)
		if err != nil {
			logger.Error().Err(err).Msg("telegram bot disabled")
		} else {
			go func() {
				if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("telegram bot stopped")
				}
			}()
		}
	}

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			runErr = err
		}
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	logger.Info().Msg("server stopped")
	return runErr
}
