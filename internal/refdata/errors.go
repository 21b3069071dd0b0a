package refdata

import "fmt"

// The errors below are configuration-completeness failures: the reference
// data cannot answer a question about a portfolio or identifier. They are
// deliberately distinct from trade-data validation failures so an operator
// knows whether to fix the source file or the reference tables.

// UnknownPortfolioError means a portfolio has no account context at all.
type UnknownPortfolioError struct {
	Portfolio string
}

func (e *UnknownPortfolioError) Error() string {
	return fmt.Sprintf("no account context for portfolio %s", e.Portfolio)
}

// LocationAccountError means no custodian location is configured.
type LocationAccountError struct {
	Portfolio string
}

func (e *LocationAccountError) Error() string {
	return fmt.Sprintf("no location account for portfolio %s", e.Portfolio)
}

// PortfolioCurrencyError means no base currency is configured.
type PortfolioCurrencyError struct {
	Portfolio string
}

func (e *PortfolioCurrencyError) Error() string {
	return fmt.Sprintf("no base currency for portfolio %s", e.Portfolio)
}

// InvestmentNotFoundError means no identifier candidate resolved to an
// investment. Type and Value name the candidate that was tried, or are
// empty when every candidate was blank.
type InvestmentNotFoundError struct {
	Portfolio string
	Type      IDType
	Value     string
}

func (e *InvestmentNotFoundError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("no security identifier present for portfolio %s", e.Portfolio)
	}
	return fmt.Sprintf("no investment for %s %s in portfolio %s", e.Type, e.Value, e.Portfolio)
}
