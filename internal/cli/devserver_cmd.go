package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDevServerCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local development backend",
		Long: `Serves the backend API used by focus reports and meeting lookups, for
local development. PUT /api/v1/admin/offline with {"offline": true} makes it
reject reports so the retry queue can be exercised.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backend == nil {
				return fmt.Errorf("development backend is not configured")
			}
			if addr == "" {
				addr = app.DevServerAddr
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			srv := &http.Server{Handler: app.Backend, ReadHeaderTimeout: 5 * time.Second}

			fmt.Fprintf(cmd.OutOrStdout(), "Development backend on %s\n",
				formatter.StyleGreen.Render("http://"+ln.Addr().String()+"/api/v1"))

			return serveUntilDone(cmd.Context(), srv, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts down.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
