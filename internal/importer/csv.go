package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledgerworks/simpnl/internal/model"
)

// CSVParser reads an already-cleaned ledger: plain RFC 4180 CSV with the
// columns description,day,type,price,balance and an optional header row.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a cleaned CSV and returns Records. Rows whose day or price is not
// numeric are dropped, as in the dialect parser.
func (p *CSVParser) Parse(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &ParseError{Stage: "cleaning", Err: fmt.Errorf("reading ledger CSV: %w", err)}
		}
		return nil, &ParseError{Stage: "read", Err: err}
	}

	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][colDesc]), "description") {
		rows = rows[1:]
	}

	var records []model.Record
	for _, row := range rows {
		rec, ok := recordFromFields(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &ParseError{Stage: "cleaning", Err: ErrNoValidData}
	}
	return records, nil
}

// WriteCSV writes records as cleaned CSV (including header), the inverse of
// CSVParser.Parse.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"description", "day", "type", "price", "balance"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		row := make([]string, numFields)
		row[colDesc] = rec.Description
		row[colDay] = fmt.Sprint(rec.Day)
		row[colType] = string(rec.Type)
		row[colPrice] = rec.Price.String()
		row[colBalance] = rec.Balance.String()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
