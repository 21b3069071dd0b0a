package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tradeconv-dev/tradeconv/internal/format"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported source formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := format.DefaultRegistry()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tDESCRIPTION")
			for _, tag := range reg.Tags() {
				fmt.Fprintf(tw, "%s\t%s\n", tag, reg.Get(tag).Description())
			}
			return tw.Flush()
		},
	}
}
