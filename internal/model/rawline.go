package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawLine is one source row as handed over by the reader: the discovered
// field set mapped to already-typed cell values, plus the 1-based source
// line number for error reporting.
type RawLine struct {
	Line   int
	Fields map[string]Value
}

// Get returns the value for a field name. Missing fields come back as a
// blank string value, matching how feeds omit trailing columns.
func (l RawLine) Get(name string) Value {
	v, ok := l.Fields[name]
	if !ok {
		return Str("")
	}
	return v
}

// Str returns the string payload of a field, empty for non-string fields.
func (l RawLine) Str(name string) string {
	return l.Get(name).Str
}

// Num returns the numeric payload of a field, zero for non-number fields.
func (l RawLine) Num(name string) decimal.Decimal {
	return l.Get(name).Num
}

// Date returns the date payload of a field.
func (l RawLine) Date(name string) time.Time {
	return l.Get(name).Date
}

// TradeEvent is a RawLine that has passed type and consistency validation.
// The resolved investment id is the only field attached downstream; the
// underlying line is never mutated.
type TradeEvent struct {
	RawLine
	Investment string
}
