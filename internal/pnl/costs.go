package pnl

import (
	"log/slog"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/model"
)

// DirectCosts is the cost table: one accumulator per business that was
// charged at least one direct cost.
type DirectCosts struct {
	Businesses []string // first-seen ledger order
	ByBusiness map[string]*model.CostAccumulator

	// Unattributed counts outflows of direct-cost types whose business could
	// not be resolved. They are left out of every business's costs.
	Unattributed int
}

// ExtractDirectCosts categorizes every record and folds the absolute price of
// each direct cost into its business's wages, marketing, health insurance or
// HR training bucket.
func ExtractDirectCosts(records []model.Record, c *attribution.Categorizer) DirectCosts {
	dc := DirectCosts{ByBusiness: make(map[string]*model.CostAccumulator)}
	for _, rec := range records {
		cat, business := c.Categorize(rec)
		if cat != model.CategoryDirectCost {
			if attribution.AttributionGap(rec, cat) {
				dc.Unattributed++
				slog.Debug("pnl: unattributed direct cost", "type", rec.Type, "description", rec.Description, "day", rec.Day)
			}
			continue
		}

		r, _ := attribution.RuleFor(rec.Type)
		acc, ok := dc.ByBusiness[business]
		if !ok {
			acc = &model.CostAccumulator{Business: business}
			dc.ByBusiness[business] = acc
			dc.Businesses = append(dc.Businesses, business)
		}

		amount := rec.Price.Abs()
		switch r.Bucket {
		case attribution.BucketWages:
			acc.Wages = acc.Wages.Add(amount)
		case attribution.BucketMarketing:
			acc.Marketing = acc.Marketing.Add(amount)
		case attribution.BucketHealthInsurance:
			acc.HealthInsurance = acc.HealthInsurance.Add(amount)
		case attribution.BucketHRTraining:
			acc.HRTraining = acc.HRTraining.Add(amount)
		}
	}
	return dc
}

// For returns the accumulator of business, zero-valued when it has none.
func (dc DirectCosts) For(business string) model.CostAccumulator {
	if acc, ok := dc.ByBusiness[business]; ok {
		return *acc
	}
	return model.CostAccumulator{Business: business}
}
