package format

import (
	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/model"
)

// isoCurrencies are the spellings accepted as-is.
var isoCurrencies = map[string]bool{
	"USD": true,
	"HKD": true,
	"CNY": true,
	"EUR": true,
	"GBP": true,
	"JPY": true,
	"SGD": true,
}

// currencySpellings collapses feed-specific symbols to ISO codes.
var currencySpellings = map[string]string{
	"US$": "USD",
	"HK$": "HKD",
	"RMB": "CNY",
}

// NormalizeCurrency collapses a feed's currency spelling to an ISO code.
// Unrecognized spellings fail rather than passing through.
func NormalizeCurrency(lineNo int, currency string) (string, error) {
	if isoCurrencies[currency] {
		return currency, nil
	}
	if iso, ok := currencySpellings[currency]; ok {
		return iso, nil
	}
	return "", &engine.UnknownCurrencyError{Line: lineNo, Currency: currency}
}

// BucketExpenses fills the fixed 5-category taxonomy in serialization
// order. Categories absent from amounts are present with value 0.
func BucketExpenses(amounts map[model.ExpenseCode]decimal.Decimal) []model.Expense {
	out := model.ZeroExpenses()
	for i := range out {
		if amt, ok := amounts[out[i].Code]; ok {
			out[i].Amount = amt
		}
	}
	return out
}
