package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"go_vocab_quiz/internal/handlers"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			if port != "" {
				a.cfg.Server.Port = port
			}

			// the table is loaded lazily by the first session when this fails
			if _, err := a.svc.LoadTable(a.context(cmd.Context())); err != nil {
				a.logger.Warn("Initial table load failed", slog.Any("error", err))
			}

			r := handlers.NewRouter(a.svc, a.db, a.cfg, a.logger)
			server := &http.Server{
				Addr:         a.cfg.Server.Port,
				Handler:      r,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: a.cfg.Gemini.Timeout + 30*time.Second,
				IdleTimeout:  120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Server listening", slog.String("port", a.cfg.Server.Port))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					a.logger.Error("Could not listen on port", slog.String("port", a.cfg.Server.Port), slog.Any("error", err))
					return err
				}
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Server forced to shutdown", slog.Any("error", err))
			}
			a.logger.Info("Server exiting")
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen address, overrides server.port (e.g. :8080)")
	return cmd
}
