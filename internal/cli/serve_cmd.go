package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/coveyrise/steward/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the client portal HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.ServerConfig
			if addr != "" {
				cfg.Addr = addr
			}

			server := httpapi.NewServer(cfg, httpapi.Services{
				Projects:  app.Projects,
				Tasks:     app.Tasks,
				Playbooks: app.Playbooks,
				Funding:   app.Funding,
				Files:     app.Files,
				Feed:      app.Feed,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := server.Start(ctx); err != nil {
				return err
			}
			fmt.Printf("Portal listening on %s (Ctrl+C to stop)\n", server.Addr())

			<-ctx.Done()
			return server.Shutdown(context.Background())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides STEWARD_ADDR)")

	return cmd
}
