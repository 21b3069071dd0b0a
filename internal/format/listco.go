package format

import (
	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/keys"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// ListCo converts equity trade blotters from the listed-company broker
// feed. The feed reports a full fee breakdown and an independent net
// settlement amount, so reconciliation is fee-aware.
type ListCo struct{}

// listcoTolerance is the net settlement reconciliation tolerance in
// absolute currency units.
var listcoTolerance = decimal.RequireFromString("0.0001")

var listcoTypes = map[string]model.Kind{
	"Acct#":      model.KindString,
	"Trade#":     model.KindString,
	"B/S":        model.KindString,
	"ISIN":       model.KindString,
	"BrkCd":      model.KindString,
	"Cur":        model.KindString,
	"Trd Dt":     model.KindDate,
	"Setl Dt":    model.KindDate,
	"Units":      model.KindNumber,
	"Unit Price": model.KindNumber,
	"Commission": model.KindNumber,
	"Tax":        model.KindNumber,
	"Fees":       model.KindNumber,
	"SEC Fee":    model.KindNumber,
	"Net Setl":   model.KindNumber,
}

var listcoSides = map[string]model.RecordType{
	"B": model.Buy,
	"S": model.Sell,
}

// listcoBrokers translates the blotter's broker codes to the accounting
// system's equity broker codes. Effective since the 2016-12-13 cutover.
var listcoBrokers = map[string]string{
	"BOCI":   "BOCI-EQ",
	"CCBS":   "CCB2-EQ",
	"CICC":   "CICF-EQ",
	"CITI":   "CG-EQ",
	"SBSH":   "CG-EQ",
	"CLSA":   "CLSA-EQ",
	"CMSHK":  "CMS6-EQ",
	"DBAB":   "DBG-EQ",
	"FBCO":   "CSFB-EQ",
	"GSCO":   "GS-EQ",
	"GUO":    "GTHK-EQ", // HK arm; these portfolios trade HK equity only
	"HSCL":   "HTIL-EQ",
	"JEFF":   "JEF3-EQ",
	"JPM":    "JP-EQ",
	"MLCO":   "MLAP-EQ",
	"MSCO":   "MS-EQ",
	"NOMURA": "INSA-EQ",
	"UBS":    "UBSW-EQ",
	"CEBSS":  "EBSI-EQ",
	"DAIW":   "DAR5-EQ",
	"GFS":    "GF01-EQ",
}

func (f *ListCo) Tag() string { return "listco" }

func (f *ListCo) Description() string {
	return "equity trade blotter with fee breakdown and net settlement"
}

func (f *ListCo) Types() map[string]model.Kind { return listcoTypes }

func (f *ListCo) PortfolioField() string { return "Acct#" }

func (f *ListCo) DateStyle(refdata.Treatment) engine.DateStyle { return engine.DateSerial }

func (f *ListCo) BlankNumericZero(string) bool { return false }

// Skip never filters: every blotter line is a trade.
func (f *ListCo) Skip(model.RawLine) bool { return false }

// Validate reconciles units*price plus the signed fee total against the
// reported net settlement. Fees add on buys and subtract on sells.
func (f *ListCo) Validate(line model.RawLine) error {
	side, err := engine.CheckSide(line, "B/S", listcoSides)
	if err != nil {
		return err
	}
	if err := engine.CheckDateOrder(line, "Trd Dt", "Setl Dt", ""); err != nil {
		return err
	}

	fees := line.Num("Commission").
		Add(line.Num("Tax")).
		Add(line.Num("Fees")).
		Add(line.Num("SEC Fee"))
	if side == model.Sell {
		fees = fees.Neg()
	}

	return engine.ReconcileAmount(line.Line,
		line.Num("Units"), line.Num("Unit Price"), fees,
		line.Num("Net Setl"), listcoTolerance)
}

func (f *ListCo) Normalize(ev model.TradeEvent, ref *refdata.Store) (model.CanonicalRecord, error) {
	side := listcoSides[ev.Str("B/S")]
	portfolio := ev.Str("Acct#")

	location, err := ref.LocationAccount(portfolio)
	if err != nil {
		return model.CanonicalRecord{}, err
	}

	investment, err := ref.Resolve(portfolio, []refdata.Candidate{
		{Type: refdata.IDISIN, Value: ev.Str("ISIN")},
	})
	if err != nil {
		return model.CanonicalRecord{}, err
	}
	ev.Investment = investment

	broker, ok := listcoBrokers[ev.Str("BrkCd")]
	if !ok {
		return model.CanonicalRecord{}, &engine.UnknownBrokerError{Line: ev.Line, Code: ev.Str("BrkCd")}
	}

	currency, err := NormalizeCurrency(ev.Line, ev.Str("Cur"))
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
		Broker:          broker,

		EventDate:        ev.Date("Trd Dt"),
		SettleDate:       ev.Date("Setl Dt"),
		ActualSettleDate: ev.Date("Setl Dt"),

		Quantity:          ev.Num("Units"),
		Price:             ev.Num("Unit Price"),
		PriceDenomination: "CALC",

		CounterInvestment:         currency,
		NetInvestmentAmount:       "CALC",
		NetCounterAmount:          "CALC",
		TradeFX:                   "",
		NotionalAmount:            "CALC",
		FundStructure:             "CALC",
		CounterFXDenomination:     "USD",
		CounterTDateFx:            "",
		AccruedInterest:           "CALC",
		InvestmentAccruedInterest: "CALC",

		Expenses: BucketExpenses(map[model.ExpenseCode]decimal.Decimal{
			model.ExpenseCommission: ev.Num("Commission"),
			model.ExpenseStampDuty:  ev.Num("Tax"),
			model.ExpenseLevy:       ev.Num("SEC Fee"),
			model.ExpenseMisc:       ev.Num("Fees"),
		}),
	}

	// Content-derived key: the ISIN, scaled net settlement, and raw broker
	// code disambiguate same-day same-side trades of the same book.
	rec.KeyValue = portfolio +
		"_" + model.FormatDate(rec.EventDate) +
		"_" + string(side) +
		"_" + ev.Str("ISIN") +
		"_" + keys.Fingerprint(ev.Num("Net Setl"), 10000) +
		"_" + ev.Str("BrkCd")
	rec.UserTranId1 = rec.KeyValue

	return rec, nil
}
