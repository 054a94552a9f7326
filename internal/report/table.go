package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ledgerworks/simpnl/internal/model"
)

var (
	profitColor = color.New(color.FgGreen)
	lossColor   = color.New(color.FgRed)
)

// WriteTable writes an aligned text table with a totals line. Profit is
// green or red when color output is enabled.
func WriteTable(w io.Writer, r *Report) error {
	a := newAmounts(r.Currency)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := "Business\tRevenue\tWages\tMarketing\tHealth\tHR\tShared\tTotal costs\tProfit\tMargin\t"
	if r.Temporal() {
		header = "Period\t" + header
	}
	fmt.Fprintln(tw, header)

	var total model.Row
	for _, row := range r.Rows {
		if r.Temporal() {
			fmt.Fprintf(tw, "%s\t", row.PeriodLabel)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Business,
			a.format(row.Revenue),
			a.format(row.Wages),
			a.format(row.Marketing),
			a.format(row.HealthInsurance),
			a.format(row.HRTraining),
			a.format(row.TotalSharedCosts),
			a.format(row.TotalCosts),
			colorize(row, a.format(row.Profit)),
			margin(row.MarginPct))

		total.Revenue = total.Revenue.Add(row.Revenue)
		total.TotalCosts = total.TotalCosts.Add(row.TotalCosts)
		total.Profit = total.Profit.Add(row.Profit)
	}

	if !r.Temporal() && len(r.Rows) > 1 {
		fmt.Fprintf(tw, "Total\t%s\t\t\t\t\t\t%s\t%s\t\t\n",
			a.format(total.Revenue),
			a.format(total.TotalCosts),
			colorize(total, a.format(total.Profit)))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if r.Unattributed > 0 {
		_, err := fmt.Fprintf(w, "\n%d direct-cost transactions could not be attributed to a business.\n", r.Unattributed)
		return err
	}
	return nil
}

func colorize(row model.Row, s string) string {
	if row.Profit.IsNegative() {
		return lossColor.Sprint(s)
	}
	return profitColor.Sprint(s)
}
