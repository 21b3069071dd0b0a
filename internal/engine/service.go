package engine

import (
	"fmt"

	"github.com/tradeconv-dev/tradeconv/internal/keys"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// Service runs the conversion pipeline for one source format against a
// reference data store. The store is loaded once and read-only; the
// service itself holds no mutable state between calls.
type Service struct {
	format Format
	ref    *refdata.Store
}

// NewService creates a Service for a format and reference data store.
func NewService(f Format, ref *refdata.Store) *Service {
	return &Service{format: f, ref: ref}
}

// Format returns the service's source format.
func (s *Service) Format() Format {
	return s.format
}

// Convert runs a batch of raw lines through the full pipeline in input
// order: type check, intentional-type filter, consistency validation,
// normalization, key derivation, duplicate disambiguation. Fail-fast: the
// first bad line aborts the batch with no output, so an operator can fix
// the source file and rerun (reruns are idempotent by key construction).
func (s *Service) Convert(lines []model.RawLine) ([]model.CanonicalRecord, error) {
	var records []model.CanonicalRecord
	for _, line := range lines {
		if err := CheckTypes(s.format.Types(), line); err != nil {
			return nil, err
		}
		if s.format.Skip(line) {
			continue
		}
		if err := s.format.Validate(line); err != nil {
			return nil, err
		}

		rec, err := s.format.Normalize(model.TradeEvent{RawLine: line}, s.ref)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Line, err)
		}
		if rec.KeyValue == "" {
			return nil, fmt.Errorf("line %d: record has empty key", line.Line)
		}
		records = append(records, rec)
	}

	if err := keys.Deduplicate(records); err != nil {
		return nil, err
	}
	return records, nil
}
