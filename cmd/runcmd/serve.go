package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/runcmd/internal/metrics"
	httpAdapter "github.com/aretw0/runcmd/pkg/adapters/http"
	"github.com/aretw0/runcmd/pkg/headless"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Exposes command execution over a JSON API. Every request carries its own document.

The server runs arbitrary shell commands, so it listens on loopback only
unless --addr says otherwise. Browsers are refused unless their origin is
listed with --allow-origin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		port, _ := cmd.Flags().GetString("port")
		origins, _ := cmd.Flags().GetStringSlice("allow-origin")
		logger := loggerFor(cmd)

		m, err := metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}

		svc := headless.New(
			headless.WithLifecycleHooks(m.Hooks()),
			headless.WithLogger(logger),
		)
		handler := httpAdapter.NewHandler(svc,
			httpAdapter.WithMetricsHandler(promhttp.Handler()),
			httpAdapter.WithAllowedOrigins(origins...),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:              net.JoinHostPort(addr, port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting runcmd server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("runcmd server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "127.0.0.1", "Interface to listen on")
	serveCmd.Flags().StringP("port", "P", "8080", "Port to listen on")
	serveCmd.Flags().StringSlice("allow-origin", nil, "Browser origin allowed to call the API (repeatable)")
}
