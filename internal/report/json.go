package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

type jsonReport struct {
	RunID        string    `json:"run_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	Source       string    `json:"source"`
	Currency     string    `json:"currency"`
	Granularity  string    `json:"granularity,omitempty"`
	Unattributed int       `json:"unattributed"`
	Rows         []jsonRow `json:"rows"`
}

type jsonRow struct {
	Period             *int                `json:"period,omitempty"`
	PeriodLabel        string              `json:"period_label,omitempty"`
	Business           string              `json:"business"`
	Revenue            decimal.Decimal     `json:"revenue"`
	SharedRevenueBased decimal.Decimal     `json:"shared_revenue_based"`
	SharedEqualSplit   decimal.Decimal     `json:"shared_equal_split"`
	Wages              decimal.Decimal     `json:"wages"`
	Marketing          decimal.Decimal     `json:"marketing"`
	HealthInsurance    decimal.Decimal     `json:"health_insurance"`
	HRTraining         decimal.Decimal     `json:"hr_training"`
	TotalDirectCosts   decimal.Decimal     `json:"total_direct_costs"`
	TotalSharedCosts   decimal.Decimal     `json:"total_shared_costs"`
	TotalCosts         decimal.Decimal     `json:"total_costs"`
	Profit             decimal.Decimal     `json:"profit"`
	MarginPct          decimal.NullDecimal `json:"margin_pct"`
}

// WriteJSON writes the report as an indented JSON document. Amounts are
// rounded to cents and encoded as strings.
func WriteJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		RunID:        r.RunID.String(),
		GeneratedAt:  r.GeneratedAt,
		Source:       r.Source,
		Currency:     r.Currency,
		Granularity:  r.Granularity,
		Unattributed: r.Unattributed,
		Rows:         make([]jsonRow, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		jr := jsonRow{
			Business:           row.Business,
			Revenue:            row.Revenue.Round(2),
			SharedRevenueBased: row.SharedRevenueBased.Round(2),
			SharedEqualSplit:   row.SharedEqualSplit.Round(2),
			Wages:              row.Wages.Round(2),
			Marketing:          row.Marketing.Round(2),
			HealthInsurance:    row.HealthInsurance.Round(2),
			HRTraining:         row.HRTraining.Round(2),
			TotalDirectCosts:   row.TotalDirectCosts.Round(2),
			TotalSharedCosts:   row.TotalSharedCosts.Round(2),
			TotalCosts:         row.TotalCosts.Round(2),
			Profit:             row.Profit.Round(2),
			MarginPct:          row.MarginPct,
		}
		if jr.MarginPct.Valid {
			jr.MarginPct.Decimal = jr.MarginPct.Decimal.Round(2)
		}
		if r.Temporal() {
			period := row.Period
			jr.Period = &period
			jr.PeriodLabel = row.PeriodLabel
		}
		out.Rows = append(out.Rows, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
