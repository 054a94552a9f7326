package importer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerworks/simpnl/internal/model"
)

// Parser converts a ledger export into Records.
type Parser interface {
	Parse(r io.Reader) ([]model.Record, error)
	Format() string
}

// ErrNoValidData is wrapped by ParseError when no line survives cleaning.
var ErrNoValidData = errors.New("no valid data after cleaning")

// ParseError reports a total parse failure. Stage names the step that failed.
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&DialectParser{})
	r.Register(&CSVParser{})
	return r
}

const (
	numFields  = 5
	colDesc    = 0
	colDay     = 1
	colType    = 2
	colPrice   = 3
	colBalance = 4
)

// recordFromFields coerces a 5-field row. ok is false when day or price is not
// numeric; an unparsable balance is kept as zero.
func recordFromFields(fields []string) (rec model.Record, ok bool) {
	if len(fields) != numFields {
		return model.Record{}, false
	}

	day, err := decimal.NewFromString(strings.TrimSpace(fields[colDay]))
	if err != nil || !day.IsInteger() || !day.BigInt().IsInt64() || !model.ValidDay(day.IntPart()) {
		return model.Record{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[colPrice]))
	if err != nil {
		return model.Record{}, false
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(fields[colBalance]))
	if err != nil {
		balance = decimal.Zero
	}

	return model.Record{
		Description: strings.TrimSpace(fields[colDesc]),
		Day:         int(day.IntPart()),
		Type:        model.TransactionType(strings.TrimSpace(fields[colType])),
		Price:       price,
		Balance:     balance,
	}, true
}
