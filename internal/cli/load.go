package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/densitool/pkg/cache"
	"github.com/matzehuels/densitool/pkg/config"
	"github.com/matzehuels/densitool/pkg/design"
	"github.com/matzehuels/densitool/pkg/errors"
	"github.com/matzehuels/densitool/pkg/loader"
)

// parseCacheTTL bounds how long a parsed listing stays cached. Listings are
// regenerated by CAD exports; a day is long enough to cover a working
// session without serving stale data across runs of the export.
const parseCacheTTL = 24 * time.Hour

// loadOpts holds the flags shared by every command that reads a listing.
type loadOpts struct {
	configPath string
	strict     bool
	noCache    bool
	refresh    bool
}

// registerLoadFlags wires the shared ingestion flags onto cmd.
func registerLoadFlags(cmd *cobra.Command, opts *loadOpts) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: XDG config dir)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on malformed rows instead of skipping them")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the parse cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-parse even if a cached result exists")
}

// loadConfig reads the configuration honoring the --config flag, then folds
// in the command-line overrides. A flag given on the command line wins even
// at its zero value, so --strict=false disables a configured strict mode.
func (c *CLI) loadConfig(cmd *cobra.Command, opts *loadOpts) (config.Config, error) {
	var cfg config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = opts.strict
	}
	return cfg, nil
}

// resolveInput picks the listing path: explicit argument first, configured
// default second.
func resolveInput(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input != "" {
		return cfg.Input, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"no input file given and no default input configured")
}

// loadLibrary reads and parses the listing at path, honoring the parse
// cache. Cached entries round-trip the designs through JSON, derived fields
// included, so a cache hit skips the metric computation as well.
func (c *CLI) loadLibrary(ctx context.Context, path string, cfg config.Config, opts *loadOpts) (*design.Library, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return nil, err
	}

	policy := loader.PolicySkip
	if cfg.Strict {
		policy = loader.PolicyStrict
	}

	store := c.newCache(cfg.Cache, opts.noCache)
	defer store.Close()
	key := cache.LibraryKey(contents, policy.String())

	if !opts.refresh {
		if lib, ok := c.cachedLibrary(ctx, store, key); ok {
			c.Logger.Debugf("parse cache hit for %s", path)
			return lib, nil
		}
	}

	p := newProgress(c.Logger)
	lib, err := loader.Load(bytes.NewReader(contents), loader.Options{
		Policy: policy,
		Logger: func(msg string, args ...any) { c.Logger.Debugf(msg, args...) },
	})
	if err != nil {
		return nil, err
	}
	p.done(fmt.Sprintf("Loaded %d designs from %s", lib.Len(), path))

	if data, err := json.Marshal(lib.Designs()); err == nil {
		if err := store.Set(ctx, key, data, parseCacheTTL); err != nil {
			c.Logger.Debugf("parse cache write failed: %v", err)
		}
	}
	return lib, nil
}

// cachedLibrary tries to restore a parsed library from the cache. Unreadable
// entries are dropped and treated as misses.
func (c *CLI) cachedLibrary(ctx context.Context, store cache.Cache, key string) (*design.Library, bool) {
	data, hit, err := store.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var designs []design.Design
	if err := json.Unmarshal(data, &designs); err != nil {
		_ = store.Delete(ctx, key)
		return nil, false
	}
	lib := design.NewLibrary()
	for _, d := range designs {
		lib.Add(d)
	}
	return lib, true
}
