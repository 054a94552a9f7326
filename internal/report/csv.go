package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ledgerworks/simpnl/internal/model"
)

// Header is the CSV header of a statement. Temporal reports append
// TemporalHeader.
const (
	Header         = "business,revenue,shared_revenue_based,shared_equal_split,wages,marketing,health_insurance,hr_training,total_direct_costs,total_shared_costs,total_costs,profit,margin_pct"
	TemporalHeader = "period,period_label"
)

const (
	numFields      = 13
	colBusiness    = 0
	colRevenue     = 1
	colSharedRev   = 2
	colSharedEqual = 3
	colWages       = 4
	colMarketing   = 5
	colHealth      = 6
	colHR          = 7
	colDirect      = 8
	colShared      = 9
	colCosts       = 10
	colProfit      = 11
	colMargin      = 12
)

// WriteCSV writes the report's rows with a header. Amounts have two decimals;
// an undefined margin is left empty.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := strings.Split(Header, ",")
	if r.Temporal() {
		header = append(header, strings.Split(TemporalHeader, ",")...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range r.Rows {
		rec := MarshalRow(row)
		if r.Temporal() {
			rec = append(rec, strconv.Itoa(row.Period), row.PeriodLabel)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a Row to its CSV fields, without period columns.
func MarshalRow(row model.Row) []string {
	rec := make([]string, numFields)
	rec[colBusiness] = row.Business
	rec[colRevenue] = row.Revenue.StringFixed(2)
	rec[colSharedRev] = row.SharedRevenueBased.StringFixed(2)
	rec[colSharedEqual] = row.SharedEqualSplit.StringFixed(2)
	rec[colWages] = row.Wages.StringFixed(2)
	rec[colMarketing] = row.Marketing.StringFixed(2)
	rec[colHealth] = row.HealthInsurance.StringFixed(2)
	rec[colHR] = row.HRTraining.StringFixed(2)
	rec[colDirect] = row.TotalDirectCosts.StringFixed(2)
	rec[colShared] = row.TotalSharedCosts.StringFixed(2)
	rec[colCosts] = row.TotalCosts.StringFixed(2)
	rec[colProfit] = row.Profit.StringFixed(2)
	if row.MarginPct.Valid {
		rec[colMargin] = row.MarginPct.Decimal.StringFixed(2)
	}
	return rec
}
