package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ledgerworks/simpnl/internal/model"
)

// DialectParser parses the simulation's transaction export, where each line
// may be wrapped in one extra pair of quotes and every interior quote is doubled:
//
//	"Tax Payment,""180"",""Tax Payment"",""-284156.2"",""2049546"""
type DialectParser struct{}

// Format returns the parser name.
func (p *DialectParser) Format() string { return "bigambitions" }

// Parse reads the whole export and returns the records that survive cleaning.
// Lines without exactly five fields, or whose day or price is not numeric, are
// dropped. A *ParseError is returned when nothing survives.
func (p *DialectParser) Parse(r io.Reader) ([]model.Record, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Stage: "read", Err: err}
	}
	return ParseDialect(content)
}

// ParseDialect is Parse over an in-memory export.
func ParseDialect(content []byte) ([]model.Record, error) {
	if !utf8.Valid(content) {
		return nil, &ParseError{Stage: "cleaning", Err: errors.New("content is not valid UTF-8")}
	}

	var (
		records   []model.Record
		malformed int
		coercion  int
	)
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := SplitLine(line)
		if len(fields) != numFields {
			malformed++
			slog.Debug("importer: discarded line", "line", i+1, "fields", len(fields))
			continue
		}
		rec, ok := recordFromFields(fields)
		if !ok {
			coercion++
			slog.Debug("importer: non-numeric day or price", "line", i+1)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &ParseError{Stage: "cleaning", Err: ErrNoValidData}
	}
	if malformed > 0 || coercion > 0 {
		slog.Info("importer: dropped lines", "malformed", malformed, "non_numeric", coercion, "kept", len(records))
	}
	return records, nil
}

// SplitLine unwraps one dialect line and splits it on commas outside quoted
// spans. Quote characters toggle the quoted state and are never emitted.
func SplitLine(line string) []string {
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	line = strings.ReplaceAll(line, `""`, `"`)

	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, current.String())
}

// FormatDialect renders a record back into the export dialect. Descriptions
// containing commas are written as a quoted span so they survive SplitLine.
// Quote characters inside a description cannot be represented and are dropped.
func FormatDialect(rec model.Record) string {
	desc := strings.ReplaceAll(rec.Description, `"`, "")
	if strings.Contains(desc, ",") {
		desc = `""` + desc + `""`
	}
	inner := fmt.Sprintf(`%s,""%d"",""%s"",""%s"",""%s""`,
		desc, rec.Day, rec.Type, rec.Price.String(), rec.Balance.String())
	return `"` + inner + `"`
}
