package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/tetrator/internal/cli"
	httpAdapter "github.com/aretw0/tetrator/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes tetration as a JSON API (POST /tetrate) with health, OpenAPI and Prometheus endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := cli.NewRuntime(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		handler, err := httpAdapter.NewHandler(rt.Service,
			httpAdapter.WithGatherer(rt.Registry),
			httpAdapter.WithLogger(rt.Logger),
		)
		if err != nil {
			return fmt.Errorf("error initializing http handler: %w", err)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			rt.Logger.Info("Starting Tetrator Server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := cli.WithSignals(cmd.Context())
		defer stop()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			rt.Logger.Info("Start shutdown...", "signal", cli.SignalFrom(ctx))

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(shutdownCtx); err != nil {
				rt.Logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			rt.Logger.Info("Tetrator Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides server.addr)")
}
