package model

import (
	"github.com/shopspring/decimal"
)

// CostAccumulator holds the direct costs charged to one business.
type CostAccumulator struct {
	Business        string
	Wages           decimal.Decimal
	Marketing       decimal.Decimal
	HealthInsurance decimal.Decimal
	HRTraining      decimal.Decimal
}

// Total returns the sum of the four direct-cost buckets.
func (c CostAccumulator) Total() decimal.Decimal {
	return c.Wages.Add(c.Marketing).Add(c.HealthInsurance).Add(c.HRTraining)
}

// Row is one business line of a profit-and-loss statement.
type Row struct {
	Business           string
	Revenue            decimal.Decimal
	SharedRevenueBased decimal.Decimal
	SharedEqualSplit   decimal.Decimal
	Wages              decimal.Decimal
	Marketing          decimal.Decimal
	HealthInsurance    decimal.Decimal
	HRTraining         decimal.Decimal
	TotalDirectCosts   decimal.Decimal
	TotalSharedCosts   decimal.Decimal
	TotalCosts         decimal.Decimal
	Profit             decimal.Decimal
	MarginPct          decimal.NullDecimal // invalid when revenue is zero

	// Set only in temporal mode.
	Period      int
	PeriodLabel string
}

// NewRow derives the totals, profit and margin of a row from its components.
func NewRow(business string, revenue, sharedRevenueBased, sharedEqualSplit decimal.Decimal, costs CostAccumulator) Row {
	r := Row{
		Business:           business,
		Revenue:            revenue,
		SharedRevenueBased: sharedRevenueBased,
		SharedEqualSplit:   sharedEqualSplit,
		Wages:              costs.Wages,
		Marketing:          costs.Marketing,
		HealthInsurance:    costs.HealthInsurance,
		HRTraining:         costs.HRTraining,
		TotalDirectCosts:   costs.Total(),
		TotalSharedCosts:   sharedRevenueBased.Add(sharedEqualSplit),
	}
	r.TotalCosts = r.TotalDirectCosts.Add(r.TotalSharedCosts)
	r.Profit = r.Revenue.Sub(r.TotalCosts)
	if !r.Revenue.IsZero() {
		r.MarginPct = decimal.NewNullDecimal(r.Profit.Mul(decimal.NewFromInt(100)).Div(r.Revenue))
	}
	return r
}
