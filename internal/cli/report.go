package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/densitool/pkg/report"
)

// reportCommand creates the report command, the tool's core operation:
// load a listing, sort by density descending, print the fixed-format table.
func (c *CLI) reportCommand() *cobra.Command {
	var opts loadOpts
	var top int

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Print designs sorted by polygon density",
		Long: `Print all design blocks of a listing sorted by polygon density, highest
first. Without a file argument the configured default input is used.

Example:
  densitool report testdata.txt
  densitool report --strict --top 20 testdata.txt`,
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

			designs := report.ByDensity(lib)
			limit := cfg.Top
			if cmd.Flags().Changed("top") {
				limit = top
			}
			if limit > 0 && limit < len(designs) {
				designs = designs[:limit]
			}
			return report.Write(cmd.OutOrStdout(), designs)
		},
	}

	registerLoadFlags(cmd, &opts)
	cmd.Flags().IntVar(&top, "top", 0, "limit output to the N densest designs (0 = all)")

	return cmd
}
