// Package engine is the conversion core shared by every source format:
// field type enforcement, arithmetic cross-validation, normalization into
// canonical accounting-import records, and idempotent key finalization.
package engine

import (
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// DateStyle selects how numeric date cells of a feed are decoded.
type DateStyle int

const (
	// DateSerial is a spreadsheet serial day count (days since 1899-12-30).
	DateSerial DateStyle = iota
	// DateCompact is a date packed into a number as mmddyyyy or mddyyyy.
	DateCompact
)

// Format is the per-source strategy set. Each source feed supplies its own
// type expectation table, vocabulary, consistency rules, and derivations;
// the engine drives them through one shared pipeline.
type Format interface {
	// Tag is the registry key for this format, e.g. "listco".
	Tag() string
	// Description is a one-line summary for the CLI format listing.
	Description() string

	// Types is the per-field semantic type expectation table.
	Types() map[string]model.Kind
	// PortfolioField names the field carrying the portfolio code, or ""
	// when the format serves a single fixed portfolio.
	PortfolioField() string
	// DateStyle selects date decoding for a portfolio's accounting treatment.
	DateStyle(t refdata.Treatment) DateStyle
	// BlankNumericZero reports whether a blank cell in the named numeric
	// field reads as zero rather than a type violation.
	BlankNumericZero(field string) bool

	// Skip reports whether the line carries a transaction type this format
	// deliberately filters out. A skip is not an error.
	Skip(line model.RawLine) bool
	// Validate cross-checks date ordering, reported totals, and vocabulary.
	Validate(line model.RawLine) error
	// Normalize maps a validated event to a canonical record, resolving
	// identifiers through ref and deriving the record's natural key.
	Normalize(ev model.TradeEvent, ref *refdata.Store) (model.CanonicalRecord, error)
}
