package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"simplerquests/internal/serverapp"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor and tracker over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := serverapp.OpenStore(a.cfg)
			if err != nil {
				return err
			}
			sp, err := serverapp.NewSettings(a.cfg, a.logger)
			if err != nil {
				return err
			}
			if a.cfg.WatchSettings && a.cfg.SettingsFile != "" {
				if err := sp.Watch(ctx, a.cfg.SettingsFile); err != nil {
					a.logger.Warn("settings_watch_failed", zap.Error(err))
				}
			}

			handler, err := serverapp.NewHandler(serverapp.Options{
				Config:   a.cfg,
				Store:    store,
				Settings: sp,
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("addr", srv.Addr), zap.String("storage", a.cfg.Storage))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.logger.Info("shutting_down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
