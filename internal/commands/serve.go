// internal/commands/serve.go
package densebench

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwiater/densebench/internal/logging"
	"github.com/mwiater/densebench/internal/site"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd serves the rendered site for local preview.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered site for local preview",
	Long:  `Serve the output directory over HTTP until interrupted. Run 'densebench build' first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		addr := serveAddr
		if addr == "" {
			addr = cfg.ServeAddr
		}

		router, err := site.NewRouter(cfg.OutputDir)
		if err != nil {
			return err
		}
		server := &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logging.LogEvent("[SITE] serving %s on http://%s", cfg.OutputDir, addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "%s serving %s on http://%s (ctrl+c to stop)\n", successText("ok"), cfg.OutputDir, addr)

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("listen: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the configured serveAddr)")
	rootCmd.AddCommand(serveCmd)
}
