package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/internal/logging"
	"github.com/spektr-org/launchdash/render"
	"github.com/spektr-org/launchdash/server"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Loads the dataset and serves the dashboard page, its JSON API and the
chart images. Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "Listen address (overrides config, default :8090)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	if serveFlags.addr != "" {
		s.cfg.Server.Addr = serveFlags.addr
	}

	charts := render.NewLatest()
	ctrl, err := engine.NewController(s.data.View(), charts,
		engine.WithSites(s.sites),
		engine.WithLogger(logging.New("controller")),
	)
	if err != nil {
		return err
	}

	ws := server.NewWebServer(server.WebServerConfig{
		Address:         s.cfg.Server.Addr,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout.Std(),
		Controller:      ctrl,
		Charts:          charts,
		Schema:          s.cfg.Schema,
		Logger:          logging.New("server"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ws.Start(gctx) })
	g.Go(ctrl.Refresh)
	return g.Wait()
}
