package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	handlers "github.com/aminekebichi/MyDay/internal/http"
	"github.com/aminekebichi/MyDay/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			itemService := service.NewItemService(a.store, a.store.Users(), a.logger)
			itemHandler := handlers.NewItemHandler(itemService, a.logger)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%s", a.cfg.Port),
				Handler:           handlers.NewRouter(itemHandler, a.logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.WithField("port", a.cfg.Port).Info("myday service starting")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					a.logger.WithError(err).Error("server failed")
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down myday service...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
