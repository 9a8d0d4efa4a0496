package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framecast/internal/api"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		Long: `Serve exposes conversions over HTTP:

  POST   /api/convert                     convert an elements payload
  GET    /api/conversions                 list recent conversions
  GET    /api/conversions/{id}            conversion record
  GET    /api/conversions/{id}/document   design document JSON
  GET    /api/conversions/{id}/tree       node tree (?format=svg|dot|png)
  DELETE /api/conversions/{id}            remove a conversion

The cache and conversion store backends come from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config)")

	return cmd
}

// runServe runs the API server until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	cc, err := cfg.OpenCache(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cc.Close()

	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewServer(cc, st, c.Logger, cfg),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Debug("backends", "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
		printInfo("Listening on %s", StyleLink.Render(listenURL(cfg.Server.Addr)))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	printInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// listenURL turns a listen address such as ":8080" into a browsable URL.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
