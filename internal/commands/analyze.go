package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/simpnl/internal/model"
	"github.com/ledgerworks/simpnl/internal/period"
	"github.com/ledgerworks/simpnl/internal/pnl"
	"github.com/ledgerworks/simpnl/internal/report"
)

type analyzeOptions struct {
	format      string
	input       string
	sortBy      string
	granularity string
	currency    string
}

func newAnalyzeCommand(global *globalOptions) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <ledger>",
		Short: "Compute profit and loss per business",
		Long: `Compute a profit-and-loss statement per business from a ledger export.

Pass --granularity to repeat the statement for each day range of the ledger
(daily, weekly, biweekly, monthly, quarterly or auto). Use "-" to read the
ledger from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: table, csv, json, markdown, pretty")
	cmd.Flags().StringVar(&opts.input, "input", "", "ledger format: bigambitions, csv")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "row order: profit, business")
	cmd.Flags().StringVarP(&opts.granularity, "granularity", "g", "", "split the ledger into periods")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "ISO 4217 currency for formatted amounts")

	return cmd
}

func runAnalyze(cmd *cobra.Command, global *globalOptions, opts analyzeOptions, path string) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	format := firstNonEmpty(opts.format, cfg.Report.Format)
	write, err := report.Lookup(format)
	if err != nil {
		return err
	}
	sortRows, err := sorter(firstNonEmpty(opts.sortBy, cfg.Report.Sort))
	if err != nil {
		return err
	}

	records, err := readRecords(cmd, path, firstNonEmpty(opts.input, cfg.Analysis.Input))
	if err != nil {
		return err
	}

	rep := report.New(filepath.Base(path), firstNonEmpty(opts.currency, cfg.Report.Currency), nil)
	if gran := firstNonEmpty(opts.granularity, cfg.Analysis.Granularity); gran != "" {
		g, err := period.ParseGranularity(gran)
		if err != nil {
			return err
		}
		res, err := period.Aggregate(cmd.Context(), records, g, policy)
		if err != nil {
			return err
		}
		rep.Rows = res.Rows
		rep.Granularity = res.Granularity.String()
		rep.Unattributed = res.Unattributed
	} else {
		st, err := pnl.Calculate(records, policy)
		if err != nil {
			return err
		}
		rep.Rows = st.Rows
		rep.Unattributed = st.Unattributed
	}

	sortRows(rep.Rows)
	return write(cmd.OutOrStdout(), rep)
}

func sorter(name string) (func([]model.Row), error) {
	switch name {
	case "profit":
		return pnl.SortByProfit, nil
	case "business", "name":
		return pnl.SortByBusiness, nil
	default:
		return nil, fmt.Errorf("unknown sort order %q", name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
