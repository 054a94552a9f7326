package period

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/model"
	"github.com/ledgerworks/simpnl/internal/pnl"
)

// Bucket is one contiguous day range of the ledger.
type Bucket struct {
	Index       int
	Label       string
	MinDay      int
	MaxDay      int
	Granularity Granularity
	Records     []model.Record
}

// Split partitions records into buckets of g's width, anchored at the
// earliest day. Auto is resolved with Recommend first. Buckets holding no
// records are omitted; the rest are returned in index order. A day outside
// model.MinDay..model.MaxDay fails the whole split.
func Split(records []model.Record, g Granularity) ([]Bucket, Granularity, error) {
	if g != Auto && g.Width() == 0 {
		return nil, g, fmt.Errorf("unknown granularity %d", int(g))
	}
	if len(records) == 0 {
		return nil, g, nil
	}

	minDay, maxDay := records[0].Day, records[0].Day
	for _, rec := range records {
		if !model.ValidDay(int64(rec.Day)) {
			return nil, g, fmt.Errorf("day %d is out of range", rec.Day)
		}
		minDay = min(minDay, rec.Day)
		maxDay = max(maxDay, rec.Day)
	}
	if g == Auto {
		g = Recommend(maxDay - minDay + 1)
		slog.Debug("period: granularity chosen", "granularity", g.String(), "span", maxDay-minDay+1)
	}
	width := g.Width()

	slots := make(map[int]*Bucket)
	for _, rec := range records {
		idx := (rec.Day - minDay) / width
		b, ok := slots[idx]
		if !ok {
			start := minDay + idx*width
			end := min(start+width-1, maxDay)
			b = &Bucket{
				Index:       idx,
				Label:       label(g, idx, start, end),
				MinDay:      start,
				MaxDay:      end,
				Granularity: g,
			}
			slots[idx] = b
		}
		b.Records = append(b.Records, rec)
	}

	indexes := make([]int, 0, len(slots))
	for idx := range slots {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	buckets := make([]Bucket, 0, len(indexes))
	for _, idx := range indexes {
		buckets = append(buckets, *slots[idx])
	}
	return buckets, g, nil
}

func label(g Granularity, idx, start, end int) string {
	if g == Daily {
		return fmt.Sprintf("Day %d", start)
	}
	return fmt.Sprintf("%s %d (Day %d—%d)", g.Name(), idx+1, start, end)
}

// Result is the outcome of a temporal run.
type Result struct {
	Granularity Granularity
	Rows        []model.Row // by period, then business
	Buckets     []Bucket

	// Unattributed sums the per-bucket counts of direct costs without a business.
	Unattributed int
}

// Aggregate runs a P&L statement over every bucket of records. Buckets share
// nothing, so they are computed in parallel; rows come back in period order
// regardless. The first bucket to fail aborts the run.
func Aggregate(ctx context.Context, records []model.Record, g Granularity, policy attribution.Policy) (*Result, error) {
	buckets, g, err := Split(records, g)
	if err != nil {
		return nil, err
	}

	stmts := make([]*pnl.Statement, len(buckets))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, b := range buckets {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := pnl.Calculate(b.Records, policy)
			if err != nil {
				return fmt.Errorf("%s: %w", b.Label, err)
			}
			stmts[i] = st
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Granularity: g, Buckets: buckets}
	for i, st := range stmts {
		res.Unattributed += st.Unattributed
		for _, row := range st.Rows {
			row.Period = buckets[i].Index
			row.PeriodLabel = buckets[i].Label
			res.Rows = append(res.Rows, row)
		}
	}
	return res, nil
}
