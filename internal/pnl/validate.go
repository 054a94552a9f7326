package pnl

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerworks/simpnl/internal/model"
)

// ValidationError describes a single invariant violation in a statement.
type ValidationError struct {
	Invariant   int
	Business    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Business, e.Description)
}

// ValidateRows enforces the statement invariants on one period's rows:
//
//  1. total_direct_costs is the sum of the four direct-cost buckets
//  2. total_shared_costs is the sum of both shared allocations
//  3. total_costs = total_direct_costs + total_shared_costs
//  4. profit = revenue - total_costs
//  5. the revenue-based allocations add up to the revenue-based pool
//  6. the equal-split allocations add up to the equal-split pool
func ValidateRows(rows []model.Row, pools Pools) []ValidationError {
	var errs []ValidationError

	sumA := decimal.Zero
	sumB := decimal.Zero
	for _, r := range rows {
		direct := r.Wages.Add(r.Marketing).Add(r.HealthInsurance).Add(r.HRTraining)
		if !r.TotalDirectCosts.Equal(direct) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				Business:    r.Business,
				Description: fmt.Sprintf("total direct costs %s != buckets %s", r.TotalDirectCosts, direct),
			})
		}

		shared := r.SharedRevenueBased.Add(r.SharedEqualSplit)
		if !r.TotalSharedCosts.Equal(shared) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Business:    r.Business,
				Description: fmt.Sprintf("total shared costs %s != allocations %s", r.TotalSharedCosts, shared),
			})
		}

		if !r.TotalCosts.Equal(r.TotalDirectCosts.Add(r.TotalSharedCosts)) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Business:    r.Business,
				Description: fmt.Sprintf("total costs %s != direct %s + shared %s", r.TotalCosts, r.TotalDirectCosts, r.TotalSharedCosts),
			})
		}

		if !r.Profit.Equal(r.Revenue.Sub(r.TotalCosts)) {
			errs = append(errs, ValidationError{
				Invariant:   4,
				Business:    r.Business,
				Description: fmt.Sprintf("profit %s != revenue %s - costs %s", r.Profit, r.Revenue, r.TotalCosts),
			})
		}

		sumA = sumA.Add(r.SharedRevenueBased)
		sumB = sumB.Add(r.SharedEqualSplit)
	}

	if !sumA.Equal(pools.RevenueBased) {
		errs = append(errs, ValidationError{
			Invariant:   5,
			Description: fmt.Sprintf("revenue-based allocations %s != pool %s", sumA, pools.RevenueBased),
		})
	}
	if !sumB.Equal(pools.EqualSplit) {
		errs = append(errs, ValidationError{
			Invariant:   6,
			Description: fmt.Sprintf("equal-split allocations %s != pool %s", sumB, pools.EqualSplit),
		})
	}

	return errs
}
