package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cuesheet/internal/httpapi"
)

const defaultServeAddr = ":8080"

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scenario and story API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = serveAddr(app)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(routerConfig(app), app.Sessions)
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	return cmd
}

func serveAddr(app *App) string {
	if app.Config != nil && app.Config.Server.Addr != "" {
		return app.Config.Server.Addr
	}
	return defaultServeAddr
}

func routerConfig(app *App) httpapi.RouterConfig {
	cfg := httpapi.RouterConfig{
		Logger:          app.logger(),
		HealthHandler:   httpapi.NewHealthHandler(),
		TemplateHandler: httpapi.NewTemplateHandler(app.Templates),
		StoryHandler:    httpapi.NewStoryHandler(app.Stories),
	}
	if app.Sessions != nil {
		cfg.SessionHandler = httpapi.NewSessionHandler(app.Sessions, app.Templates, app.Scenarios)
	}
	if app.Config != nil {
		cfg.AllowOrigins = app.Config.Server.AllowOrigins
	}
	return cfg
}
