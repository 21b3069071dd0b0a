// Package keys derives and finalizes the natural keys that make conversion
// runs idempotent: the downstream accounting system upserts by key, so a
// rerun over the same input must reproduce the same keys byte for byte.
package keys

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/model"
)

// DuplicateKeyError reports a key collision surviving the disambiguation
// pass. The suffixing walk makes this structurally impossible, so hitting
// it means an engine bug, not bad input.
type DuplicateKeyError struct {
	Key        string
	Investment string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q survived disambiguation (investment %s)", e.Key, e.Investment)
}

// Fingerprint scales a monetary amount to an integer by a fixed
// power-of-ten multiplier and renders it in decimal. Truncation is toward
// zero. Fixed-point scaling keeps float drift out of key material.
func Fingerprint(amount decimal.Decimal, scale int64) string {
	return amount.Mul(decimal.NewFromInt(scale)).Truncate(0).String()
}

// InvestmentToken folds an investment id into key-safe form by replacing
// every run of spaces with an underscore. The token keeps a trailing
// underscore so it concatenates directly with the amount fingerprint.
func InvestmentToken(investment string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(investment) {
		b.WriteString(tok)
		b.WriteByte('_')
	}
	return b.String()
}

// Deduplicate disambiguates colliding keys in input order: a record whose
// key was already seen gets `_<n>` appended, with n starting at 1 and
// probing upward until the composite key is unseen. The final key is
// mirrored into UserTranId1. A second full pass asserts global uniqueness.
// Disambiguation order is strictly input order; it is not stable across
// reruns if identically-keyed records change relative position.
func Deduplicate(records []model.CanonicalRecord) error {
	seen := make(map[string]bool, len(records))
	for i := range records {
		base := records[i].KeyValue
		final := base
		for n := 1; seen[final]; n++ {
			final = fmt.Sprintf("%s_%d", base, n)
		}
		records[i].KeyValue = final
		records[i].UserTranId1 = final
		seen[final] = true
	}

	// Correctness assertion, not a retry path.
	check := make(map[string]bool, len(records))
	for i := range records {
		if check[records[i].KeyValue] {
			return &DuplicateKeyError{Key: records[i].KeyValue, Investment: records[i].Investment}
		}
		check[records[i].KeyValue] = true
	}
	return nil
}
