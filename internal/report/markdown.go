package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// WriteMarkdown writes the report as a Markdown document with one table per
// period.
func WriteMarkdown(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, markdown(r))
	return err
}

// WritePretty renders the Markdown report for a terminal.
func WritePretty(w io.Writer, r *Report) error {
	return writeGlamour(w, r, glamour.WithAutoStyle())
}

func writeGlamour(w io.Writer, r *Report, style glamour.TermRendererOption) error {
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(120))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := tr.Render(markdown(r))
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func markdown(r *Report) string {
	a := newAmounts(r.Currency)
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Profit & Loss: %s\n\n", r.Source)
	if r.Temporal() {
		fmt.Fprintf(&b, "Granularity: **%s**\n\n", r.Granularity)
	}

	period := -1
	for i, row := range r.Rows {
		if i == 0 || (r.Temporal() && row.Period != period) {
			if r.Temporal() {
				fmt.Fprintf(&b, "## %s\n\n", row.PeriodLabel)
			}
			b.WriteString("| Business | Revenue | Direct costs | Shared costs | Profit | Margin |\n")
			b.WriteString("|---|---:|---:|---:|---:|---:|\n")
			period = row.Period
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(row.Business),
			a.format(row.Revenue),
			a.format(row.TotalDirectCosts),
			a.format(row.TotalSharedCosts),
			a.format(row.Profit),
			margin(row.MarginPct))
		if i+1 == len(r.Rows) || (r.Temporal() && r.Rows[i+1].Period != period) {
			b.WriteString("\n")
		}
	}
	if len(r.Rows) == 0 {
		b.WriteString("_No businesses found._\n\n")
	}

	if r.Unattributed > 0 {
		fmt.Fprintf(&b, "> %d direct-cost transactions could not be attributed to a business.\n\n", r.Unattributed)
	}
	fmt.Fprintf(&b, "_Run %s_\n", r.RunID)
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
