package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/wayfinder/internal/handlers"
	"github.com/lehigh-university-libraries/wayfinder/internal/hostprobe"
	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var rangesPath string
	var hostURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the shelf lookup API for the discovery front-end",
		Long: `Starts the Wayfinder API on the specified port.

The discovery front-end calls /api/locate to find which shelves a call
number sits on, and /api/labels for the host's translated code-tables.
Floor-plan SVG assets are served from static/.`,
		Example: `  # Start server on default port 8888
  wayfinder serve

  # Custom port and range table
  wayfinder serve --port 3000 --ranges config/ranges.yaml

  # Proxy label code-tables from the discovery host
  wayfinder serve --host https://discovery.example.edu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := shelf.LoadTable(rangesPath)
			if err != nil {
				return err
			}

			var probe *hostprobe.Probe
			if hostURL != "" {
				probe = hostprobe.New(hostURL, slog.Default())
				// The host may still be deploying; wait for it but do not
				// block lookups on label availability.
				if err := probe.WaitForReady(cmd.Context()); err != nil {
					slog.Warn("Discovery host not ready, labels may be unavailable", "host", hostURL, "err", err)
				}
			}

			handler := handlers.New(table, probe)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/locate", handler.HandleLocate)
			mux.HandleFunc("/api/ranges", handler.HandleRanges)
			mux.HandleFunc("/api/labels", handler.HandleLabels)
			mux.HandleFunc("/static/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Wayfinder API available", "addr", addr, "url", "http://localhost"+addr, "ranges", len(table.Ranges))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVarP(&rangesPath, "ranges", "r", "config/ranges.yaml", "Path to the shelf range table")
	cmd.Flags().StringVar(&hostURL, "host", "", "Base URL of the discovery host (enables /api/labels)")

	return cmd
}
