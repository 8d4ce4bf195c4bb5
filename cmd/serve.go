package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"stylist/internal/config"
	"stylist/internal/handlers"
	"stylist/internal/providers"
	"stylist/internal/stylist"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog browsing and recommendation web server",
		Long: `Starts the Stylist web interface on the specified port.

The server loads the download ledger, the caption store, and the shopper
profiles at startup and refuses to start when any of them are missing or
inconsistent. All catalog state is read-only once loaded.`,
		Example: `  # Start server on default port 8888
  stylist serve

  # Start server on custom port
  stylist serve --port 3000

  # Serve precomputed captions only, never calling the AI provider
  STYLIST_LIVE_QUERY=false stylist serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			state, err := handlers.LoadState(cfg)
			if err != nil {
				return err
			}
			slog.Info("Loaded catalog state", "items", len(state.Items), "captions", len(state.Captions), "profiles", len(state.Profiles))

			provider, err := newProvider(cfg)
			if err != nil {
				return err
			}

			recommender := stylist.New(state.Entries(), provider, providers.Config{
				Model:          cfg.Model,
				EmbeddingModel: cfg.EmbeddingModel,
				Temperature:    cfg.Temperature,
			}, cfg.LiveQuery)

			handler := handlers.New(state, recommender)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/items", handler.HandleItems)
			mux.HandleFunc("/api/items/", handler.HandleItemDetail)
			mux.HandleFunc("/api/profiles", handler.HandleProfiles)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/api/suggest", handler.HandleSuggest)
			mux.HandleFunc("/images/", handler.HandleItemImage)
			mux.HandleFunc("/", handler.HandleStatic)
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
				slog.Info("Stylist interface available", "addr", addr, "url", "http://localhost"+addr)
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

	return cmd
}
