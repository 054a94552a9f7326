package pnl

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/model"
)

// Revenue is the revenue table: total Revenue-typed inflow per business.
type Revenue struct {
	Businesses []string // first-seen ledger order
	Totals     map[string]decimal.Decimal
}

// ExtractRevenue groups Revenue records by the business named in their
// description and sums their prices. Businesses without revenue records do
// not appear.
func ExtractRevenue(records []model.Record) Revenue {
	rev := Revenue{Totals: make(map[string]decimal.Decimal)}
	for _, rec := range records {
		if rec.Type != model.TypeRevenue {
			continue
		}
		b := attribution.RevenueBusiness(rec.Description)
		total, seen := rev.Totals[b]
		if !seen {
			rev.Businesses = append(rev.Businesses, b)
		}
		rev.Totals[b] = total.Add(rec.Price)
	}
	return rev
}

// Total returns the revenue of all businesses combined.
func (r Revenue) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range r.Businesses {
		sum = sum.Add(r.Totals[b])
	}
	return sum
}
