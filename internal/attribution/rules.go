// Package attribution recovers the owning business of ledger records from their
// free-text descriptions and sorts records into P&L categories.
//
// All description parsing lives in one rule table keyed by transaction type, so
// the directory builder and the categorizer cannot drift apart.
package attribution

import (
	"strings"
	"unicode"

	"github.com/ledgerworks/simpnl/internal/model"
)

// CostBucket is the direct-cost column a rule charges.
type CostBucket int

const (
	BucketNone CostBucket = iota
	BucketWages
	BucketMarketing
	BucketHealthInsurance
	BucketHRTraining
)

func (b CostBucket) String() string {
	switch b {
	case BucketWages:
		return "wages"
	case BucketMarketing:
		return "marketing"
	case BucketHealthInsurance:
		return "health_insurance"
	case BucketHRTraining:
		return "hr_training"
	default:
		return "none"
	}
}

// Rule describes how to read one transaction type's description.
type Rule struct {
	Type model.TransactionType

	// Business recovers the business named in the description, or "".
	Business func(desc string) string
	// Employee recovers the employee named in the description, or "".
	Employee func(desc string) string

	// Direct marks a recovered business as the record's owner. When false the
	// business is informational and the record stays a shared cost.
	Direct bool
	Bucket CostBucket
}

var rules = map[model.TransactionType]Rule{
	model.TypeWage: {
		Type:     model.TypeWage,
		Business: wageBusiness,
		Employee: wageEmployee,
		Direct:   true,
		Bucket:   BucketWages,
	},
	model.TypeReplacementWage: {
		Type:     model.TypeReplacementWage,
		Business: replacementBusiness,
		Employee: replacementEmployee,
		Direct:   true,
		Bucket:   BucketWages,
	},
	model.TypeMarketing: {
		Type:     model.TypeMarketing,
		Business: marketingBusiness,
		Direct:   true,
		Bucket:   BucketMarketing,
	},
	// Delivery contracts name a business but are charged to the shared
	// revenue-based pool: no single business owns them.
	model.TypeDeliveryContract: {
		Type:     model.TypeDeliveryContract,
		Business: deliveryBusiness,
	},
	model.TypeHealthInsurance: {
		Type:     model.TypeHealthInsurance,
		Employee: insuredEmployee,
		Bucket:   BucketHealthInsurance,
	},
	model.TypeHRTraining: {
		Type:     model.TypeHRTraining,
		Employee: traineeEmployee,
		Bucket:   BucketHRTraining,
	},
}

// RuleFor returns the extraction rule for t.
func RuleFor(t model.TransactionType) (Rule, bool) {
	r, ok := rules[t]
	return r, ok
}

// ExtractBusiness returns the business named in rec's description according to
// its type's rule, whether or not that business owns the record. Revenue
// records use RevenueBusiness.
func ExtractBusiness(rec model.Record) string {
	if rec.Type == model.TypeRevenue {
		return RevenueBusiness(rec.Description)
	}
	r, ok := rules[rec.Type]
	if !ok || r.Business == nil {
		return ""
	}
	return r.Business(rec.Description)
}

// RevenueBusiness strips a trailing "Revenue" word from a revenue description.
// "Tech & Gift Revenue" -> "Tech & Gift"; "G&J" -> "G&J".
func RevenueBusiness(desc string) string {
	words := strings.Fields(desc)
	if len(words) > 0 && words[len(words)-1] == "Revenue" {
		return strings.Join(words[:len(words)-1], " ")
	}
	return strings.TrimSpace(desc)
}

// "Kathleen Hinds (HQ Ray Daily Wage)"
func wageEmployee(desc string) string {
	i := strings.Index(desc, "(")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(desc[:i])
}

func wageBusiness(desc string) string {
	i := strings.Index(desc, "(")
	if i < 0 {
		return ""
	}
	return before(desc[i+1:], "Daily")
}

// "Replacement Wage for Ann Lee (HQ Ray Wage)"
func replacementEmployee(desc string) string {
	rest := afterLast(desc, "for")
	if i := strings.Index(rest, "("); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

func replacementBusiness(desc string) string {
	i := strings.LastIndex(desc, "(")
	if i < 0 {
		return ""
	}
	return before(desc[i+1:], "Wage")
}

// "Billboard campaign for Tech & Gift"
func marketingBusiness(desc string) string {
	return afterLast(desc, "for")
}

// "Tech & Gift delivery from NY Distro"
func deliveryBusiness(desc string) string {
	return before(desc, "delivery")
}

// "Silver Health Insurance (Joseph Halliday) - 10 Employees"
func insuredEmployee(desc string) string {
	open := strings.Index(desc, "(")
	if open < 0 {
		return ""
	}
	end := strings.Index(desc[open+1:], ")")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(desc[open+1 : open+1+end])
}

// "Kathleen Hinds training"
func traineeEmployee(desc string) string {
	return before(desc, "training")
}

// before returns the trimmed text preceding the first standalone tok in s, or
// "" when tok does not occur.
func before(s, tok string) string {
	i := tokenIndex(s, tok, false)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(s[:i])
}

// afterLast returns the trimmed text following the last standalone tok in s, or
// "" when tok does not occur.
func afterLast(s, tok string) string {
	i := tokenIndex(s, tok, true)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(s[i+len(tok):])
}

// tokenIndex finds tok in s where it is not part of a longer word, so "for"
// does not match inside "Comfort".
func tokenIndex(s, tok string, last bool) int {
	found := -1
	for off := 0; off <= len(s)-len(tok); {
		i := strings.Index(s[off:], tok)
		if i < 0 {
			break
		}
		i += off
		if isBoundary(s, i-1) && isBoundary(s, i+len(tok)) {
			if !last {
				return i
			}
			found = i
		}
		off = i + 1
	}
	return found
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	r := rune(s[i])
	return r < 0x80 && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
