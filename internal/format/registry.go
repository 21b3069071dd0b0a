// Package format holds the per-source feed profiles: each broker or
// custodian export gets a Format implementation bundling its type
// expectation table, vocabulary, tolerances, expense bucketing, FX rule,
// and key scheme. The engine stays source-agnostic.
package format

import (
	"sort"
	"strings"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
)

// Registry holds named source formats.
type Registry struct {
	formats map[string]engine.Format
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]engine.Format)}
}

// Register adds a format. Panics on duplicate tag.
func (r *Registry) Register(f engine.Format) {
	key := strings.ToLower(f.Tag())
	if _, ok := r.formats[key]; ok {
		panic("duplicate format tag: " + key)
	}
	r.formats[key] = f
}

// Get returns the format for a tag, or nil.
func (r *Registry) Get(tag string) engine.Format {
	return r.formats[strings.ToLower(tag)]
}

// Tags returns registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.formats))
	for t := range r.formats {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// DefaultRegistry returns a registry with all built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ListCo{})
	r.Register(&Custodian{})
	r.Register(&CustodianTransfer{})
	r.Register(&BondSettlement{})
	return r
}
