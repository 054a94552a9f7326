package pnl

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/model"
)

var (
	// ErrZeroRevenue means a revenue-proportional pool had no revenue to follow.
	ErrZeroRevenue = errors.New("total revenue is zero")
	// ErrNoBusinesses means an equal-split pool had no businesses to split across.
	ErrNoBusinesses = errors.New("no revenue-bearing businesses")
)

// AllocationError reports a shared-cost pool that cannot be distributed.
type AllocationError struct {
	Pool   model.Category
	Amount decimal.Decimal
	Err    error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocating %s pool of %s: %v", e.Pool, e.Amount.StringFixed(2), e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// Pools holds the two shared-cost totals, as positive amounts.
type Pools struct {
	RevenueBased decimal.Decimal
	EqualSplit   decimal.Decimal
}

// SumPools adds up the absolute price of every record categorized into one of
// the shared pools.
func SumPools(records []model.Record, c *attribution.Categorizer) Pools {
	var p Pools
	for _, rec := range records {
		switch cat, _ := c.Categorize(rec); cat {
		case model.CategorySharedRevenueBased:
			p.RevenueBased = p.RevenueBased.Add(rec.Price.Abs())
		case model.CategorySharedEqualSplit:
			p.EqualSplit = p.EqualSplit.Add(rec.Price.Abs())
		}
	}
	return p
}

// Allocation is each revenue-bearing business's share of the two pools.
type Allocation struct {
	RevenueBased map[string]decimal.Decimal
	EqualSplit   map[string]decimal.Decimal
}

// Allocate distributes the revenue-based pool in proportion to each business's
// share of total revenue and splits the equal-split pool evenly across the
// businesses of the revenue table.
//
// The last business absorbs the rounding residual of each division, so each
// pool is distributed exactly. A non-empty pool that cannot be distributed is
// an *AllocationError.
func Allocate(pools Pools, rev Revenue) (Allocation, error) {
	a := Allocation{
		RevenueBased: make(map[string]decimal.Decimal, len(rev.Businesses)),
		EqualSplit:   make(map[string]decimal.Decimal, len(rev.Businesses)),
	}

	total := rev.Total()
	if !pools.RevenueBased.IsZero() && total.IsZero() {
		return Allocation{}, &AllocationError{Pool: model.CategorySharedRevenueBased, Amount: pools.RevenueBased, Err: ErrZeroRevenue}
	}
	if !pools.EqualSplit.IsZero() && len(rev.Businesses) == 0 {
		return Allocation{}, &AllocationError{Pool: model.CategorySharedEqualSplit, Amount: pools.EqualSplit, Err: ErrNoBusinesses}
	}

	n := decimal.NewFromInt(int64(len(rev.Businesses)))
	allocatedA := decimal.Zero
	allocatedB := decimal.Zero
	for i, b := range rev.Businesses {
		if i == len(rev.Businesses)-1 {
			a.RevenueBased[b] = pools.RevenueBased.Sub(allocatedA)
			a.EqualSplit[b] = pools.EqualSplit.Sub(allocatedB)
			break
		}

		shareA := decimal.Zero
		if !pools.RevenueBased.IsZero() {
			shareA = pools.RevenueBased.Mul(rev.Totals[b]).Div(total)
		}
		shareB := pools.EqualSplit.Div(n)

		a.RevenueBased[b] = shareA
		a.EqualSplit[b] = shareB
		allocatedA = allocatedA.Add(shareA)
		allocatedB = allocatedB.Add(shareB)
	}
	return a, nil
}
