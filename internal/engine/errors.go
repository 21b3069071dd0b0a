package engine

import (
	"fmt"

	"github.com/tradeconv-dev/tradeconv/internal/model"
)

// FieldTypeError reports a raw field whose value does not match the
// format's type expectation table. It aborts the whole batch: a mistyped
// column means the upstream export layout assumptions no longer hold.
type FieldTypeError struct {
	Line  int
	Field string
	Want  model.Kind
	Value model.Value
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("line %d: field %s should be %s, got %s %q",
		e.Line, e.Field, e.Want, e.Value.Kind, e.Value.Display())
}

// MissingFieldError reports a field from the format's type expectation
// table that is absent from the batch's discovered field set. The column
// layout is fixed per batch, so a missing column breaks the layout
// assumptions just like a mistyped one.
type MissingFieldError struct {
	Line  int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("line %d: field %s missing from input", e.Line, e.Field)
}

// TradeInfoError reports a line whose cross-checked values disagree: dates
// out of order, totals beyond tolerance, or an unrecognized vocabulary
// value. Fatal for the batch; the operator fixes the source and reruns.
type TradeInfoError struct {
	Line   int
	Reason string
}

func (e *TradeInfoError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// UnknownBrokerError reports a broker code missing from the format's
// translation table. Reference data problem, not trade data.
type UnknownBrokerError struct {
	Line int
	Code string
}

func (e *UnknownBrokerError) Error() string {
	return fmt.Sprintf("line %d: broker code %q has no mapping", e.Line, e.Code)
}

// UnknownCurrencyError reports a currency spelling missing from the
// format's substitution table.
type UnknownCurrencyError struct {
	Line     int
	Currency string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("line %d: unrecognized currency %q", e.Line, e.Currency)
}
