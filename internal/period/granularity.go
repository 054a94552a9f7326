// Package period splits a ledger into day-range buckets and runs a P&L
// statement for each one.
package period

import (
	"fmt"
	"strings"
)

// Granularity is the width of the day ranges a ledger is split into.
type Granularity int

const (
	Auto Granularity = iota
	Daily
	Weekly
	BiWeekly
	Monthly
	Quarterly
)

func (g Granularity) String() string {
	switch g {
	case Auto:
		return "auto"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case BiWeekly:
		return "biweekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// Width is the bucket size in days. Auto has no width of its own.
func (g Granularity) Width() int {
	switch g {
	case Daily:
		return 1
	case Weekly:
		return 7
	case BiWeekly:
		return 14
	case Monthly:
		return 30
	case Quarterly:
		return 90
	default:
		return 0
	}
}

// Name is the word used in bucket labels.
func (g Granularity) Name() string {
	switch g {
	case Daily:
		return "Day"
	case Weekly:
		return "Week"
	case BiWeekly:
		return "Bi-Week"
	case Monthly:
		return "Month"
	case Quarterly:
		return "Quarter"
	default:
		return ""
	}
}

// ParseGranularity accepts a granularity name or its short form ("week",
// "month", ...). An empty string means Auto.
func ParseGranularity(s string) (Granularity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "auto", "":
		return Auto, nil
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "biweekly", "bi-weekly", "biweek":
		return BiWeekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	default:
		return Auto, fmt.Errorf("unknown granularity %s", s)
	}
}

// Recommend picks a granularity for a ledger spanning span days.
func Recommend(span int) Granularity {
	switch {
	case span <= 30:
		return Daily
	case span <= 90:
		return Weekly
	case span <= 180:
		return BiWeekly
	case span <= 365:
		return Monthly
	default:
		return Quarterly
	}
}
