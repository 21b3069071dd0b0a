// Package reader is the thin CSV collaborator in front of the engine: it
// discovers the field set once per file and hands the engine a sequence of
// already-typed field maps. Cells that fail to decode are passed through
// as strings so the engine's type validator reports them uniformly.
package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// ReadFile reads one source CSV export into raw lines.
func ReadFile(path string, f engine.Format, ref *refdata.Store) ([]model.RawLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	lines, err := Parse(file, f, ref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

// Parse reads a source CSV export. The header row defines the field set
// for every following row; a fully blank row terminates the data block,
// matching how the feeds append totals below an empty line.
func Parse(r io.Reader, f engine.Format, ref *refdata.Store) ([]model.RawLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	fields := discoverFields(records[0])
	if len(fields) == 0 {
		return nil, fmt.Errorf("no header fields found")
	}

	var lines []model.RawLine
	for i, rec := range records[1:] {
		if blankRow(rec) {
			break
		}
		line, err := parseRow(rec, fields, i+2, f, ref)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// discoverFields reads header cells up to the first blank one.
func discoverFields(header []string) []string {
	var fields []string
	for _, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			break
		}
		fields = append(fields, name)
	}
	return fields
}

func blankRow(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(rec []string, fields []string, lineNo int, f engine.Format, ref *refdata.Store) (model.RawLine, error) {
	if len(rec) < len(fields) {
		return model.RawLine{}, fmt.Errorf("expected %d cells, got %d", len(fields), len(rec))
	}

	// Date decoding depends on the portfolio's accounting treatment, so
	// the portfolio cell is read ahead of the rest of the row.
	style := f.DateStyle("")
	if pf := f.PortfolioField(); pf != "" {
		portfolio := cellByField(rec, fields, pf)
		treatment, err := ref.Treatment(portfolio)
		if err != nil {
			return model.RawLine{}, err
		}
		style = f.DateStyle(treatment)
	}

	types := f.Types()
	values := make(map[string]model.Value, len(fields))
	for i, name := range fields {
		values[name] = parseCell(strings.TrimSpace(rec[i]), name, types, style, f)
	}

	return model.RawLine{Line: lineNo, Fields: values}, nil
}

func cellByField(rec []string, fields []string, name string) string {
	for i, fld := range fields {
		if fld == name {
			return strings.TrimSpace(rec[i])
		}
	}
	return ""
}

// parseCell decodes one cell per the format's expectation table. Cells
// that do not decode as expected come back as string values; the engine's
// type validator turns them into field-level errors with line context.
func parseCell(cell, name string, types map[string]model.Kind, style engine.DateStyle, f engine.Format) model.Value {
	kind, known := types[name]
	if !known {
		return model.Str(cell)
	}

	switch kind {
	case model.KindNumber:
		if cell == "" {
			if f.BlankNumericZero(name) {
				return model.Num(decimal.Zero)
			}
			return model.Str("")
		}
		num, err := decimal.NewFromString(cell)
		if err != nil {
			return model.Str(cell)
		}
		return model.Num(num)

	case model.KindDate:
		t, err := parseDate(cell, style)
		if err != nil {
			return model.Str(cell)
		}
		return model.Date(t)

	default:
		return model.Str(cell)
	}
}
