// Package report renders P&L statements as CSV, JSON, Markdown or a terminal
// table.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerworks/simpnl/internal/model"
)

// Report is one rendered analysis run.
type Report struct {
	RunID       uuid.UUID
	GeneratedAt time.Time
	Source      string
	Currency    string
	Granularity string // empty for a whole-ledger statement
	Rows        []model.Row

	Unattributed int
}

// New stamps rows with a fresh run ID.
func New(source, currency string, rows []model.Row) *Report {
	return &Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Currency:    currency,
		Rows:        rows,
	}
}

// Temporal reports whether rows carry a period.
func (r *Report) Temporal() bool {
	return r.Granularity != ""
}

// Writer renders a report.
type Writer func(w io.Writer, r *Report) error

var writers = map[string]Writer{
	"table":    WriteTable,
	"csv":      WriteCSV,
	"json":     WriteJSON,
	"markdown": WriteMarkdown,
	"pretty":   WritePretty,
}

// Lookup returns the writer for format (case-insensitive).
func Lookup(format string) (Writer, error) {
	w, ok := writers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return w, nil
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type amounts struct {
	cur *money.Currency
}

func newAmounts(code string) amounts {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		slog.Warn("report: unknown currency, using USD", "currency", code)
		cur = money.GetCurrency(money.USD)
	}
	return amounts{cur: cur}
}

// format renders d in the currency's minor units, e.g. "$1,234.50".
func (a amounts) format(d decimal.Decimal) string {
	minor := d.Shift(int32(a.cur.Fraction)).Round(0)
	return a.cur.Formatter().Format(minor.IntPart())
}

func margin(m decimal.NullDecimal) string {
	if !m.Valid {
		return "n/a"
	}
	return m.Decimal.StringFixed(1) + "%"
}
