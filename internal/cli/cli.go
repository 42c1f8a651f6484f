// Package cli implements the golevels command-line interface.
//
// This package provides commands for computing per-term level summaries from
// Gene Ontology snapshots, exporting ontology graphs, serving results over
// HTTP, browsing tables interactively, and managing the local cache and
// archive. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compute: Build the per-term summary table from an OBO snapshot
//   - graph: Export one ontology graph as DOT, SVG, or JSON
//   - serve: Serve a computed summary over an HTTP API
//   - browse: Browse a summary table interactively
//   - archive: Inspect stored summary tables
//   - cache: Manage the stage cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mhalvors/golevels/pkg/buildinfo"
	"github.com/mhalvors/golevels/pkg/cache"
	"github.com/mhalvors/golevels/pkg/pipeline"
	"github.com/mhalvors/golevels/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "golevels"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the user's
// config file applied on top of the defaults.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	cfg, err := loadUserConfig()
	if err != nil {
		c.Logger.Warn("config file ignored", "err", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "golevels computes per-term level summaries for Gene Ontology graphs",
		Long:         `golevels derives, for every Gene Ontology term, the shortest and longest path length from its ontology root plus a terminal-node flag, and merges the three ontologies into one summary table.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.computeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use, honoring the configured
// cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.KeyPrefix)
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == CacheBackendOff {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == CacheBackendRedis {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured summary archive backend.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == StoreBackendMongo {
		return store.NewMongoStore(ctx, c.Config.Store.MongoURI)
	}
	dir := c.Config.Store.Dir
	if dir == "" {
		d, err := dataDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(d, "store")
	}
	return store.NewFileStore(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/golevels/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard
// (~/.local/share/golevels/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// configPath returns the config file location using XDG standard
// (~/.config/golevels/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
