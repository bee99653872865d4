package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattias-p/Signal-Queue/internal/signame"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the platform signal-name table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := signame.Load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNUMBER")
			for _, name := range table.Names() {
				sig, _ := table.Lookup(name)
				fmt.Fprintf(w, "%s\t%d\n", name, int(sig))
			}
			return w.Flush()
		},
	}
}
