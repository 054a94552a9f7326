package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/importer"
	"github.com/ledgerworks/simpnl/internal/model"
)

func newRecordsCommand(global *globalOptions) *cobra.Command {
	var input, format, category string

	cmd := &cobra.Command{
		Use:   "records <ledger>",
		Short: "List parsed records with their category and business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			policy, err := cfg.Policy()
			if err != nil {
				return err
			}
			records, err := readRecords(cmd, args[0], firstNonEmpty(input, cfg.Analysis.Input))
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				return importer.WriteCSV(cmd.OutOrStdout(), records)
			case "table":
				return writeRecordTable(cmd, records, policy, model.Category(category))
			default:
				return fmt.Errorf("unknown records format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "ledger format: bigambitions, csv")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, or csv for a clean copy of the ledger")
	cmd.Flags().StringVar(&category, "category", "", "only show records of this category")

	return cmd
}

func writeRecordTable(cmd *cobra.Command, records []model.Record, policy attribution.Policy, only model.Category) error {
	c := attribution.NewCategorizer(attribution.BuildDirectory(records), policy)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tTYPE\tPRICE\tCATEGORY\tBUSINESS\tDESCRIPTION")
	for _, rec := range records {
		cat, business := c.Categorize(rec)
		if only != "" && cat != only {
			continue
		}
		if cat == model.CategoryRevenue {
			business = attribution.ExtractBusiness(rec)
		}
		if business == "" {
			business = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			rec.Day, rec.Type, rec.Price.StringFixed(2), cat, business, rec.Description)
	}
	return tw.Flush()
}
