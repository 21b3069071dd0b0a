// Package refdata holds the static reference data the conversion engine
// resolves against: per-portfolio account context (custodian location, base
// currency, accounting treatment) and the security identifier lookup table.
// Both are loaded once at startup and read-only for the rest of the run.
package refdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Treatment is a portfolio's accounting classification. It selects the
// identifier-resolution and date-decoding rules that apply.
type Treatment string

const (
	TreatmentHTM     Treatment = "HTM"
	TreatmentTrading Treatment = "Trading"
)

// IDType names an external security identifier scheme.
type IDType string

const (
	IDISIN   IDType = "ISIN"
	IDSEDOL  IDType = "SEDOL"
	IDCUSIP  IDType = "CUSIP"
	IDTicker IDType = "Ticker"
)

// AccountContext is the per-portfolio static configuration.
type AccountContext struct {
	Portfolio       string
	LocationAccount string
	BaseCurrency    string
	FeedCurrency    string // base currency as configured on the feed side
	Treatment       Treatment
}

// IdentifierRecord maps one external identifier to an internal investment.
type IdentifierRecord struct {
	Portfolio  string
	Type       IDType
	Value      string
	Investment string
	Name       string
}

// Candidate is one (type, value) pair offered to Resolve, in priority order.
type Candidate struct {
	Type  IDType
	Value string
}

type idKey struct {
	portfolio string
	idType    IDType
	value     string
}

// Store provides read-only lookups over account contexts and identifiers.
type Store struct {
	contexts    map[string]AccountContext
	identifiers map[idKey]IdentifierRecord
}

// NewStore builds a Store from loaded reference rows. A duplicate identifier
// mapping is a configuration error and fails construction.
func NewStore(contexts []AccountContext, identifiers []IdentifierRecord) (*Store, error) {
	ctxByPortfolio := make(map[string]AccountContext, len(contexts))
	for _, c := range contexts {
		if _, ok := ctxByPortfolio[c.Portfolio]; ok {
			return nil, fmt.Errorf("duplicate account context for portfolio %s", c.Portfolio)
		}
		ctxByPortfolio[c.Portfolio] = c
	}

	idByKey := make(map[idKey]IdentifierRecord, len(identifiers))
	for _, rec := range identifiers {
		key := idKey{rec.Portfolio, rec.Type, rec.Value}
		if _, ok := idByKey[key]; ok {
			return nil, fmt.Errorf("duplicate identifier mapping %s/%s/%s", rec.Portfolio, rec.Type, rec.Value)
		}
		idByKey[key] = rec
	}

	return &Store{contexts: ctxByPortfolio, identifiers: idByKey}, nil
}

// Load reads contexts.csv and identifiers.csv from a reference data directory.
func Load(dir string) (*Store, error) {
	cf, err := os.Open(filepath.Join(dir, "contexts.csv"))
	if err != nil {
		return nil, fmt.Errorf("opening account contexts: %w", err)
	}
	defer cf.Close()

	contexts, err := ReadContexts(cf)
	if err != nil {
		return nil, fmt.Errorf("reading account contexts: %w", err)
	}

	idf, err := os.Open(filepath.Join(dir, "identifiers.csv"))
	if err != nil {
		return nil, fmt.Errorf("opening identifiers: %w", err)
	}
	defer idf.Close()

	identifiers, err := ReadIdentifiers(idf)
	if err != nil {
		return nil, fmt.Errorf("reading identifiers: %w", err)
	}

	return NewStore(contexts, identifiers)
}

// Context returns the account context for a portfolio.
func (s *Store) Context(portfolio string) (AccountContext, error) {
	c, ok := s.contexts[portfolio]
	if !ok {
		return AccountContext{}, &UnknownPortfolioError{Portfolio: portfolio}
	}
	return c, nil
}

// LocationAccount returns the custodian location for a portfolio.
func (s *Store) LocationAccount(portfolio string) (string, error) {
	c, ok := s.contexts[portfolio]
	if !ok || c.LocationAccount == "" {
		return "", &LocationAccountError{Portfolio: portfolio}
	}
	return c.LocationAccount, nil
}

// BaseCurrency returns a portfolio's base currency.
func (s *Store) BaseCurrency(portfolio string) (string, error) {
	c, ok := s.contexts[portfolio]
	if !ok || c.BaseCurrency == "" {
		return "", &PortfolioCurrencyError{Portfolio: portfolio}
	}
	return c.BaseCurrency, nil
}

// FeedCurrency returns the base currency as configured on the source feed,
// which is not always consistent with the book's own setting.
func (s *Store) FeedCurrency(portfolio string) (string, error) {
	c, ok := s.contexts[portfolio]
	if !ok || c.FeedCurrency == "" {
		return "", &PortfolioCurrencyError{Portfolio: portfolio}
	}
	return c.FeedCurrency, nil
}

// Treatment returns a portfolio's accounting treatment.
func (s *Store) Treatment(portfolio string) (Treatment, error) {
	c, ok := s.contexts[portfolio]
	if !ok {
		return "", &UnknownPortfolioError{Portfolio: portfolio}
	}
	return c.Treatment, nil
}

// IsHTM reports whether a portfolio is held-to-maturity.
func (s *Store) IsHTM(portfolio string) bool {
	c, ok := s.contexts[portfolio]
	return ok && c.Treatment == TreatmentHTM
}

// Resolve maps an ordered list of identifier candidates to an investment id.
// Candidates are tried in the given priority order; a blank value is the
// only skip condition. The first populated candidate is authoritative: if
// its value has no mapping the resolution fails, even when a later
// candidate would have matched.
func (s *Store) Resolve(portfolio string, candidates []Candidate) (string, error) {
	for _, c := range candidates {
		if strings.TrimSpace(c.Value) == "" {
			continue
		}
		rec, ok := s.identifiers[idKey{portfolio, c.Type, c.Value}]
		if !ok {
			return "", &InvestmentNotFoundError{Portfolio: portfolio, Type: c.Type, Value: c.Value}
		}
		return rec.Investment, nil
	}
	return "", &InvestmentNotFoundError{Portfolio: portfolio}
}
