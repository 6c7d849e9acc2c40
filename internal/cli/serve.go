package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/argwheel/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, datasets string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive views over HTTP",
		Long: `Serve exposes the datasets directory through a JSON API. Each view is a
session holding a zoom stack; clicks, zoom-outs and resizes are posted to it
and answered with the new layout.`,
		Example: `  argwheel serve --datasets ./data
  ARGWHEEL_SESSIONS=redis REDIS_URL=redis://localhost:6379/0 argwheel serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, datasets, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&datasets, "datasets", "", "datasets directory (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, datasets string, noCache bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if datasets != "" {
		cfg.Server.Datasets = datasets
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sessions, err := newSessionStore(cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	srv, err := server.New(server.Options{
		Runner:   runner,
		Sessions: sessions,
		Config:   cfg,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	printInfo("Serving %s on %s", StyleValue.Render(cfg.Server.Datasets), StyleLink.Render(listenURL(cfg.Server.Addr)))
	printDetail("sessions: %s, cache: %s", cfg.Session.Backend, cacheBackend(cfg.Cache.Backend, noCache))
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// listenURL turns a listen address into a clickable URL.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return fmt.Sprintf("http://%s", addr)
}

func cacheBackend(backend string, noCache bool) string {
	if noCache {
		return "none"
	}
	return backend
}
