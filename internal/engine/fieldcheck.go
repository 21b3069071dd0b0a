package engine

import (
	"sort"

	"github.com/tradeconv-dev/tradeconv/internal/model"
)

// CheckTypes enforces the format's type expectation table on one line.
// Every field named in the table must be present with the expected kind;
// fields outside the table pass through unchecked. The first violation
// (in field-name order, for deterministic reporting) fails.
func CheckTypes(types map[string]model.Kind, line model.RawLine) error {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, present := line.Fields[name]
		if !present {
			return &MissingFieldError{Line: line.Line, Field: name}
		}
		if v.Kind != types[name] {
			return &FieldTypeError{Line: line.Line, Field: name, Want: types[name], Value: v}
		}
	}
	return nil
}
