package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yukikurage/kanbanflow/internal/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the board and serve it over HTTP",
	Long: `Load the board from storage, seeding defaults into an empty store, and
serve the board API on listen_addr.

Example usage:
  kanbanflow serve
  KANBANFLOW_LISTEN_ADDR=127.0.0.1:9000 kanbanflow serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		// A failed load is kept on the board and reported by /api/board.
		if err := a.board.Initialize(ctx); err != nil {
			a.log.WithError(err).Warn("board failed to load")
		}

		gin.SetMode(a.cfg.GinMode)
		srv := &http.Server{
			Addr:              a.cfg.ListenAddr,
			Handler:           handlers.NewRouter(a.board, a.log),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.log.WithField("addr", srv.Addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE
}
