package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/simpnl/internal/attribution"
)

func newDirectoryCommand(global *globalOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "directory <ledger>",
		Short: "Show which business employs each employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			records, err := readRecords(cmd, args[0], firstNonEmpty(input, cfg.Analysis.Input))
			if err != nil {
				return err
			}

			dir := attribution.BuildDirectory(records)
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EMPLOYEE\tBUSINESS")
			for _, name := range dir.Employees() {
				business, _ := dir.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\n", name, business)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if conflicts := dir.Conflicts(); len(conflicts) > 0 {
				fmt.Fprintf(out, "\n%d reassignments (the last one wins):\n", len(conflicts))
				for _, c := range conflicts {
					fmt.Fprintf(out, "  day %d: %s moved from %s to %s\n", c.Day, c.Employee, c.Previous, c.Current)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "ledger format: bigambitions, csv")

	return cmd
}
