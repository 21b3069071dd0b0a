package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the semantic type of a raw field value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one typed cell of a raw source line. Exactly one of the three
// payloads is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Num  decimal.Decimal
	Date time.Time
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Num returns a numeric Value.
func Num(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Num: d}
}

// NumFloat returns a numeric Value from a float literal. Test helper and
// profile-table convenience; engine arithmetic stays in decimal.
func NumFloat(f float64) Value {
	return Num(decimal.NewFromFloat(f))
}

// Date returns a date Value.
func Date(t time.Time) Value {
	return Value{Kind: KindDate, Date: t}
}

// IsBlank reports whether v is a string value that is empty after the
// reader's trimming. Blank is the only skip condition for identifier
// candidates; a populated value is always authoritative.
func (v Value) IsBlank() bool {
	return v.Kind == KindString && v.Str == ""
}

// Display renders the payload for error messages.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num.String()
	case KindDate:
		return FormatDate(v.Date)
	default:
		return ""
	}
}
