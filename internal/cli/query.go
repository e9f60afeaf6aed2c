package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/densitool/pkg/errors"
	"github.com/matzehuels/densitool/pkg/index"
)

// queryCommand creates the query command tree for spatial lookups over the
// block rectangles. All coordinates are micrometers, matching the listing.
func (c *CLI) queryCommand() *cobra.Command {
	var opts loadOpts
	var file string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Spatial queries over design block rectangles",
		Long: `Spatial queries over the block rectangles of a listing, backed by an
R-tree index. Coordinates are micrometers.

Examples:
  densitool query box 0 0 5000 5000 -f testdata.txt
  densitool query at 1200 340 -f testdata.txt
  densitool query near 1000 1000 -n 5 -f testdata.txt`,
	}

	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "listing file (default: configured input)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: XDG config dir)")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail on malformed rows instead of skipping them")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the parse cache")
	cmd.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "re-parse even if a cached result exists")

	cmd.AddCommand(c.queryBoxCommand(&opts, &file))
	cmd.AddCommand(c.queryAtCommand(&opts, &file))
	cmd.AddCommand(c.queryNearCommand(&opts, &file))

	return cmd
}

// queryBoxCommand creates "query box": blocks intersecting a window.
func (c *CLI) queryBoxCommand(opts *loadOpts, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "box <lx> <ly> <ux> <uy>",
		Short: "List blocks intersecting a window",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseCoords(args)
			if err != nil {
				return err
			}
			idx, err := c.buildIndex(cmd, opts, file)
			if err != nil {
				return err
			}
			hits, err := idx.Window(coords[0], coords[1], coords[2], coords[3])
			if err != nil {
				return err
			}
			return writeHits(cmd, hits)
		},
	}
}

// queryAtCommand creates "query at": blocks covering a point.
func (c *CLI) queryAtCommand(opts *loadOpts, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "at <x> <y>",
		Short: "List blocks covering a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseCoords(args)
			if err != nil {
				return err
			}
			idx, err := c.buildIndex(cmd, opts, file)
			if err != nil {
				return err
			}
			hits, err := idx.At(coords[0], coords[1])
			if err != nil {
				return err
			}
			return writeHits(cmd, hits)
		},
	}
}

// queryNearCommand creates "query near": the k blocks nearest a point.
func (c *CLI) queryNearCommand(opts *loadOpts, file *string) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "near <x> <y>",
		Short: "List the blocks nearest to a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseCoords(args)
			if err != nil {
				return err
			}
			idx, err := c.buildIndex(cmd, opts, file)
			if err != nil {
				return err
			}
			return writeHits(cmd, idx.Near(coords[0], coords[1], k))
		},
	}

	cmd.Flags().IntVarP(&k, "count", "n", 3, "number of neighbors to return")

	return cmd
}

// buildIndex loads the listing behind the query flags and indexes it.
func (c *CLI) buildIndex(cmd *cobra.Command, opts *loadOpts, file *string) (*index.Index, error) {
	cfg, err := c.loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	var args []string
	if *file != "" {
		args = []string{*file}
	}
	path, err := resolveInput(args, cfg)
	if err != nil {
		return nil, err
	}
	lib, err := c.loadLibrary(cmd.Context(), path, cfg, opts)
	if err != nil {
		return nil, err
	}

	p := newProgress(c.Logger)
	idx, err := index.New(lib)
	if err != nil {
		return nil, err
	}
	p.done(fmt.Sprintf("Indexed %d blocks", idx.Len()))
	return idx, nil
}

// writeHits prints one line per hit. The index ID disambiguates blocks that
// share a name in the listing.
func writeHits(cmd *cobra.Command, hits []index.Hit) error {
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "%d blocks\n", len(hits)); err != nil {
		return err
	}
	for _, h := range hits {
		d := h.Design
		if _, err := fmt.Fprintf(w, "%-8s %-10s density=%10.6f poly/mm²   area=%12.2f mm²   at (%.1f, %.1f)\n",
			shortID(h.ID), d.Name, d.Density, d.AreaMM2, d.LX, d.LY); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseCoords parses command arguments as float64 micrometers.
func parseCoords(args []string) ([]float64, error) {
	coords := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid coordinate %q", a)
		}
		coords[i] = v
	}
	return coords, nil
}
