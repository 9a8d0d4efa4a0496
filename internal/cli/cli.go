// Package cli implements the framecast command-line interface.
//
// # Commands
//
//   - convert: build a design document from extracted elements
//   - serve: run the HTTP API
//   - tree: draw a converted document as a node-link diagram
//   - cache: manage the persistent image cache
//   - version: print build information
//
// All commands support --verbose (-v) for debug-level logging and
// --config for a TOML settings file.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/framecast/internal/config"
	"github.com/matzehuels/framecast/pkg/buildinfo"
	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "framecast"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag value.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Framecast turns extracted web pages into design documents",
		Long:         `Framecast converts the visual elements extracted from a rendered web page into a tree of design nodes (frames, groups, text and shapes) with styles, images and z-order preserved.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "TOML config file")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the --config file and environment.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	cc, err := cfg.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "err", err)
		cc = cache.NewNullCache()
	}
	return pipeline.NewRunner(cc, cfg.Keyer(), c.Logger), nil
}

// cacheDir returns the configured file cache directory.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
