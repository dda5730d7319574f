package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/knightpaths/pkg/knight"
)

// distanceCommand creates the distance command.
func (c *CLI) distanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "distance [start] [end]",
		Short:   "Print the minimum number of knight moves between two squares",
		Example: "  knightpaths distance a1 h8",
		Args:    zeroOrTwoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			startIn, endIn, err := c.squaresFromArgs(out, args)
			if err != nil {
				return err
			}
			start, end, err := parseSquares(out, startIn, endIn)
			if err != nil {
				return err
			}

			d, err := knight.Distance(start, end)
			if err != nil {
				return err
			}
			c.Logger.Debug("computed distance", "start", start, "end", end, "moves", d)
			fmt.Fprintln(out, d)
			return nil
		},
	}
}
