package attribution

import (
	"fmt"

	"github.com/ledgerworks/simpnl/internal/model"
)

// Policy names the transaction types that form the two shared-cost pools.
type Policy struct {
	RevenueBased map[model.TransactionType]bool
	EqualSplit   map[model.TransactionType]bool
}

// DefaultPolicy returns the simulation's standard shared-cost pools.
func DefaultPolicy() Policy {
	p, _ := NewPolicy(
		[]string{
			string(model.TypeRent),
			string(model.TypeLoanPayment),
			string(model.TypeTaxPayment),
			string(model.TypeBankNegativeRate),
			string(model.TypeDeliveryContract),
		},
		[]string{
			string(model.TypeItemPurchase),
			string(model.TypeImportDelivery),
			string(model.TypeInteriorDesigner),
		},
	)
	return p
}

// NewPolicy builds a Policy from type names. A type may belong to one pool only.
func NewPolicy(revenueBased, equalSplit []string) (Policy, error) {
	p := Policy{
		RevenueBased: make(map[model.TransactionType]bool, len(revenueBased)),
		EqualSplit:   make(map[model.TransactionType]bool, len(equalSplit)),
	}
	for _, t := range revenueBased {
		p.RevenueBased[model.TransactionType(t)] = true
	}
	for _, t := range equalSplit {
		if p.RevenueBased[model.TransactionType(t)] {
			return Policy{}, fmt.Errorf("type %q is in both shared-cost pools", t)
		}
		p.EqualSplit[model.TransactionType(t)] = true
	}
	return p, nil
}

// Categorizer assigns records to P&L categories.
type Categorizer struct {
	dir    *Directory
	policy Policy
}

// NewCategorizer creates a Categorizer that resolves employees through dir.
func NewCategorizer(dir *Directory, policy Policy) *Categorizer {
	return &Categorizer{dir: dir, policy: policy}
}

// Categorize returns rec's category and, for direct costs, the owning business.
//
// Inflows are revenue and zero amounts are unknown. An outflow is a direct
// cost when its type's rule names an owning business, or names an employee
// found in the directory. Otherwise the policy decides between the two shared
// pools, and anything left over is personal spending.
func (c *Categorizer) Categorize(rec model.Record) (model.Category, string) {
	switch {
	case rec.Price.IsPositive():
		return model.CategoryRevenue, ""
	case rec.Price.IsZero():
		return model.CategoryUnknown, ""
	}

	if r, ok := rules[rec.Type]; ok {
		if r.Direct && r.Business != nil {
			if b := r.Business(rec.Description); b != "" {
				return model.CategoryDirectCost, b
			}
		}
		if !rec.Type.IsWage() && r.Employee != nil {
			if b, ok := c.dir.Lookup(r.Employee(rec.Description)); ok {
				return model.CategoryDirectCost, b
			}
		}
	}

	switch {
	case c.policy.RevenueBased[rec.Type]:
		return model.CategorySharedRevenueBased, ""
	case c.policy.EqualSplit[rec.Type]:
		return model.CategorySharedEqualSplit, ""
	default:
		return model.CategoryPersonal, ""
	}
}

// AttributionGap reports whether rec is an outflow of a direct-cost type that
// cat failed to charge to a business.
func AttributionGap(rec model.Record, cat model.Category) bool {
	if !rec.Price.IsNegative() || cat == model.CategoryDirectCost {
		return false
	}
	r, ok := rules[rec.Type]
	return ok && r.Bucket != BucketNone
}
