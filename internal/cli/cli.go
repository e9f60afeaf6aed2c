// Package cli implements the densitool command-line interface.
//
// Densitool reads whitespace-delimited design layout listings and ranks the
// blocks by polygon density (polygons per mm²). The main commands are:
//   - report: print designs sorted by density, highest first
//   - query: spatial lookups over block rectangles (window, point, nearest)
//   - render: write an SVG floorplan shaded by density
//   - browse: interactive density browser
//   - cache: manage the parse cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/densitool/pkg/buildinfo"
	"github.com/matzehuels/densitool/pkg/cache"
	"github.com/matzehuels/densitool/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "densitool"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Densitool ranks design layout blocks by polygon density",
		Long:         `Densitool reads whitespace-delimited layout listings and reports design blocks sorted by polygon density (polygons per mm²), with spatial queries and floorplan rendering on top.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.reportCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache selects the parse-cache backend. Backend failures degrade to a
// working tool: Redis trouble falls back to the file cache, file-cache
// trouble disables caching.
func (c *CLI) newCache(cfg config.CacheConfig, noCache bool) cache.Cache {
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache()
	}
	if cfg.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(cfg.Addr)
		if err == nil {
			return rc
		}
		c.Logger.Warnf("Redis cache unavailable, falling back to file cache: %v", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/densitool/).
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
