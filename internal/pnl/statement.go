// Package pnl turns categorized ledger records into per-business
// profit-and-loss statements.
package pnl

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/model"
)

// Statement is the result of one P&L run.
type Statement struct {
	Rows      []model.Row // sorted by business name
	Pools     Pools
	Directory *attribution.Directory

	// Unattributed counts direct-cost records left out of every business.
	Unattributed int
}

// Calculate runs the whole pipeline over records: it builds the employee
// directory, extracts revenue and direct costs, allocates the shared pools and
// joins everything into one row per business.
//
// A business present in only one of the revenue and cost tables gets zeros for
// the missing side. The only failure is an *AllocationError.
func Calculate(records []model.Record, policy attribution.Policy) (*Statement, error) {
	dir := attribution.BuildDirectory(records)
	cat := attribution.NewCategorizer(dir, policy)

	rev := ExtractRevenue(records)
	costs := ExtractDirectCosts(records, cat)
	pools := SumPools(records, cat)

	alloc, err := Allocate(pools, rev)
	if err != nil {
		return nil, err
	}

	rows := make([]model.Row, 0, len(rev.Businesses)+len(costs.Businesses))
	for _, b := range union(rev.Businesses, costs.Businesses) {
		rows = append(rows, model.NewRow(b,
			rev.Totals[b],
			alloc.RevenueBased[b],
			alloc.EqualSplit[b],
			costs.For(b),
		))
	}
	SortByBusiness(rows)

	if verrs := ValidateRows(rows, pools); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if costs.Unattributed > 0 {
		slog.Warn("pnl: direct costs without a business were skipped", "count", costs.Unattributed)
	}
	slog.Debug("pnl: statement ready",
		"businesses", len(rows),
		"employees", dir.Len(),
		"revenue_based_pool", pools.RevenueBased.String(),
		"equal_split_pool", pools.EqualSplit.String())

	return &Statement{
		Rows:         rows,
		Pools:        pools,
		Directory:    dir,
		Unattributed: costs.Unattributed,
	}, nil
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// SortByBusiness orders rows by period, then business name.
func SortByBusiness(rows []model.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		return rows[i].Business < rows[j].Business
	})
}

// SortByProfit orders rows by period, then profit descending.
func SortByProfit(rows []model.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		return rows[i].Profit.GreaterThan(rows[j].Profit)
	})
}
