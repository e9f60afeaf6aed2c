package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/densitool/pkg/report"
)

// renderCommand creates the render command: an SVG floorplan of the blocks
// with fills shaded by relative density.
func (c *CLI) renderCommand() *cobra.Command {
	var opts loadOpts
	var output string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Write an SVG floorplan shaded by density",
		Long: `Render the block rectangles of a listing as an SVG floorplan. Fill color
encodes density relative to the densest block; hovering a block shows its
name and metrics.

Example:
  densitool render testdata.txt -o floorplan.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts)
			if err != nil {
				return err
			}
			path, err := resolveInput(args, cfg)
			if err != nil {
				return err
			}
			lib, err := c.loadLibrary(cmd.Context(), path, cfg, &opts)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := report.WriteSVG(f, lib.Designs()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Wrote %s", output)
			printDetail("%d blocks", lib.Len())
			return nil
		},
	}

	registerLoadFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "density.svg", "output SVG path")

	return cmd
}
