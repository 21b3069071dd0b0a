package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/keys"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// BondSettlement converts the settlement desk's bond tickets for the
// held-to-maturity bond book. Tickets are keyed by a form serial number
// that embeds the trade date, quote prices as percent of par, and spell
// currencies with symbols rather than ISO codes.
type BondSettlement struct {
	// Portfolio overrides the book the desk settles for; empty means the
	// default HTM bond book.
	Portfolio string
}

const bondSettlementPortfolio = "12734"

var bondSettlementTypes = map[string]model.Kind{
	"Item No.":        model.KindNumber,
	"Form Serial No.": model.KindString,
	"Security Code":   model.KindString,
	"Buy/Sell":        model.KindString,
	"Currency":        model.KindString,
	"Trade Date":      model.KindDate,
	"Value Date":      model.KindDate,
	"Par Value":       model.KindNumber,
	"Price (%)":       model.KindNumber,
}

var bondSettlementSides = map[string]model.RecordType{
	"Buy":  model.Buy,
	"Sell": model.Sell,
}

// bondCodeToISIN maps the desk's legacy non-ISIN security codes.
var bondCodeToISIN = map[string]string{
	"BNYHFB12001":      "HK0000097490",
	"CMU: HSBCFN13002": "HK0000134780",
	"EI7283738":        "HK0000083706",
	"EI8608990":        "HK0000091832",
	"EI9135894":        "HK0000096856",
	"EJ0975098":        "HK0000175916",
}

// bondCounterFx is the static counter FX table for the upload; historical
// rates are not tracked for this book, and the base currency carries none.
var bondCounterFx = map[string]string{
	"USD": "0.1282",
	"CNY": "0.8718",
}

func (f *BondSettlement) Tag() string { return "bondsettle" }

func (f *BondSettlement) Description() string {
	return "settlement desk bond tickets for the HTM bond book"
}

func (f *BondSettlement) Types() map[string]model.Kind { return bondSettlementTypes }

// PortfolioField is empty: the desk settles one fixed book.
func (f *BondSettlement) PortfolioField() string { return "" }

func (f *BondSettlement) DateStyle(refdata.Treatment) engine.DateStyle { return engine.DateSerial }

func (f *BondSettlement) BlankNumericZero(string) bool { return false }

func (f *BondSettlement) Skip(model.RawLine) bool { return false }

func (f *BondSettlement) Validate(line model.RawLine) error {
	if _, err := engine.CheckSide(line, "Buy/Sell", bondSettlementSides); err != nil {
		return err
	}
	if err := engine.CheckDateOrder(line, "Trade Date", "Value Date", ""); err != nil {
		return err
	}

	// The form serial embeds the trade date; a disagreement means the
	// ticket was filed against the wrong form.
	serialDate, err := dateFromSerial(line.Str("Form Serial No."))
	if err != nil {
		return &engine.TradeInfoError{Line: line.Line, Reason: err.Error()}
	}
	if !serialDate.Equal(line.Date("Trade Date")) {
		return &engine.TradeInfoError{
			Line: line.Line,
			Reason: fmt.Sprintf("form serial %s dated %s, trade date %s",
				line.Str("Form Serial No."), model.FormatDate(serialDate),
				model.FormatDate(line.Date("Trade Date"))),
		}
	}

	if _, err := bondISIN(line.Str("Security Code")); err != nil {
		return &engine.TradeInfoError{Line: line.Line, Reason: err.Error()}
	}
	return nil
}

func (f *BondSettlement) Normalize(ev model.TradeEvent, ref *refdata.Store) (model.CanonicalRecord, error) {
	side := bondSettlementSides[ev.Str("Buy/Sell")]
	portfolio := f.portfolio()

	location, err := ref.LocationAccount(portfolio)
	if err != nil {
		return model.CanonicalRecord{}, err
	}
	baseCcy, err := ref.BaseCurrency(portfolio)
	if err != nil {
		return model.CanonicalRecord{}, err
	}

	isin, err := bondISIN(ev.Str("Security Code"))
	if err != nil {
		return model.CanonicalRecord{}, &engine.TradeInfoError{Line: ev.Line, Reason: err.Error()}
	}
	investment := isin + " HTM"
	ev.Investment = investment

	currency, err := NormalizeCurrency(ev.Line, ev.Str("Currency"))
	if err != nil {
		return model.CanonicalRecord{}, err
	}

	rec := model.CanonicalRecord{
		RecordType:   side,
		RecordAction: "InsertUpdate",
		KeyName:      "UserTranId1",

		Portfolio:       portfolio,
		LocationAccount: location,
		Strategy:        "Default",
		Investment:      investment,
		Broker:          "journaling entries",

		EventDate:        ev.Date("Trade Date"),
		SettleDate:       ev.Date("Value Date"),
		ActualSettleDate: ev.Date("Value Date"),

		Quantity:          ev.Num("Par Value"),
		Price:             ev.Num("Price (%)"),
		PriceDenomination: "CALC",

		CounterInvestment:         currency,
		NetInvestmentAmount:       "CALC",
		NetCounterAmount:          "CALC",
		TradeFX:                   "",
		NotionalAmount:            "CALC",
		FundStructure:             "CALC",
		CounterFXDenomination:     baseCcy,
		CounterTDateFx:            bondSettlementFx(currency, baseCcy),
		AccruedInterest:           "CALC",
		InvestmentAccruedInterest: "CALC",

		Expenses: BucketExpenses(nil),
	}

	notional := rec.Quantity.Mul(rec.Price)
	rec.KeyValue = portfolio +
		"_" + model.FormatDate(rec.EventDate) +
		"_" + string(side) +
		"_" + keys.InvestmentToken(investment) +
		keys.Fingerprint(notional.Abs(), 100)
	rec.UserTranId1 = rec.KeyValue

	return rec, nil
}

func (f *BondSettlement) portfolio() string {
	if f.Portfolio != "" {
		return f.Portfolio
	}
	return bondSettlementPortfolio
}

// bondISIN returns the ticket's security code as an ISIN, mapping legacy
// codes through the static table. ISINs are recognized by their 12-char
// shape.
func bondISIN(code string) (string, error) {
	if len(code) == 12 {
		return code, nil
	}
	if isin, ok := bondCodeToISIN[code]; ok {
		return isin, nil
	}
	return "", fmt.Errorf("security code %q does not map to an ISIN", code)
}

// dateFromSerial extracts the date from a form serial like "GFI-10-0630"
// (year 2010, June 30).
func dateFromSerial(serial string) (time.Time, error) {
	parts := strings.Split(serial, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed form serial %q", serial)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed form serial %q", serial)
	}
	mmdd, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed form serial %q", serial)
	}
	return time.Date(2000+year, time.Month(mmdd/100), mmdd%100, 0, 0, 0, 0, time.UTC), nil
}

// bondSettlementFx returns the static counter FX for a ticket currency.
// Equal-currency pairs carry no rate: no conversion occurred.
func bondSettlementFx(currency, baseCcy string) string {
	if currency == baseCcy {
		return ""
	}
	return bondCounterFx[currency]
}
