package format

import (
	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/keys"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// Custodian converts the custodian's full transaction export. The export
// mixes purchases and sales with cash movements, paydowns, exchange
// offers, and FX deals; only purchases and sales are converted, the rest
// are deliberately skipped. The feed carries no broker information and no
// fee breakdown, so every fee lands in the miscellaneous bucket.
type Custodian struct{}

var custodianFXTolerance = decimal.RequireFromString("0.001")

var custodianTypes = map[string]model.Kind{
	"ACCT_ACNO":    model.KindString,
	"TRANTYP":      model.KindString,
	"TRANCOD":      model.KindString,
	"LCLCCY":       model.KindString,
	"SCTYID_SMSEQ": model.KindString,
	"SCTYID_ISIN":  model.KindString,
	"SCTYID_SEDOL": model.KindString,
	"SCTYID_CUSIP": model.KindString,
	"TRDDATE":      model.KindDate,
	"STLDATE":      model.KindDate,
	"ENTRDATE":     model.KindDate,
	"QTY":          model.KindNumber,
	"GROSSBAS":     model.KindNumber,
	"PRINB":        model.KindNumber,
	"GROSSLCL":     model.KindNumber,
	"FXRATE":       model.KindNumber,
	"TRADEPRC":     model.KindNumber,
	"ACCRBAS":      model.KindNumber,
	"TRNBVBAS":     model.KindNumber,
}

var custodianSides = map[string]model.RecordType{
	"Purch": model.Buy,
	"Sale":  model.Sell,
}

// custodianNumericBlankZero lists numeric fields the feed leaves blank on
// transaction types that do not carry them.
var custodianNumericBlankZero = map[string]bool{
	"QTY":      true,
	"GROSSBAS": true,
	"PRINB":    true,
	"GROSSLCL": true,
	"FXRATE":   true,
	"TRADEPRC": true,
	"ACCRBAS":  true,
	"TRNBVBAS": true,
}

func (f *Custodian) Tag() string { return "custodian" }

func (f *Custodian) Description() string {
	return "custodian transaction export, purchases and sales only"
}

func (f *Custodian) Types() map[string]model.Kind { return custodianTypes }

func (f *Custodian) PortfolioField() string { return "ACCT_ACNO" }

// DateStyle: held-to-maturity books export spreadsheet serial dates; the
// other books pack dates as mmddyyyy numbers.
func (f *Custodian) DateStyle(t refdata.Treatment) engine.DateStyle {
	if t == refdata.TreatmentHTM {
		return engine.DateSerial
	}
	return engine.DateCompact
}

func (f *Custodian) BlankNumericZero(field string) bool {
	return custodianNumericBlankZero[field]
}

func (f *Custodian) Skip(line model.RawLine) bool {
	_, trade := custodianSides[line.Str("TRANTYP")]
	return !trade
}

func (f *Custodian) Validate(line model.RawLine) error {
	if _, err := engine.CheckSide(line, "TRANTYP", custodianSides); err != nil {
		return err
	}
	if err := engine.CheckDateOrder(line, "TRDDATE", "STLDATE", "ENTRDATE"); err != nil {
		return err
	}
	if err := engine.CheckFX(line, "GROSSBAS", "FXRATE", "GROSSLCL", custodianFXTolerance); err != nil {
		return err
	}

	reported := line.Num("PRINB").Mul(line.Num("FXRATE")).Abs()
	return engine.ReconcileAmount(line.Line,
		line.Num("QTY"), line.Num("TRADEPRC"), decimal.Zero,
		reported, custodianFXTolerance)
}

func (f *Custodian) Normalize(ev model.TradeEvent, ref *refdata.Store) (model.CanonicalRecord, error) {
	side := custodianSides[ev.Str("TRANTYP")]
	portfolio := ev.Str("ACCT_ACNO")

	location, err := ref.LocationAccount(portfolio)
	if err != nil {
		return model.CanonicalRecord{}, err
	}
	baseCcy, err := ref.BaseCurrency(portfolio)
	if err != nil {
		return model.CanonicalRecord{}, err
	}

	investment, err := resolveSecurityIDs(ev, ref, portfolio)
	if err != nil {
		return model.CanonicalRecord{}, err
	}
	ev.Investment = investment

	currency, err := NormalizeCurrency(ev.Line, ev.Str("LCLCCY"))
	if err != nil {
		return model.CanonicalRecord{}, err
	}

	counterFx, err := counterTDateFx(ref, portfolio, baseCcy, ev.Num("FXRATE"))
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

		EventDate:        ev.Date("TRDDATE"),
		SettleDate:       ev.Date("STLDATE"),
		ActualSettleDate: ev.Date("STLDATE"),

		Quantity:          ev.Num("QTY"),
		Price:             ev.Num("TRADEPRC"),
		PriceDenomination: "CALC",

		CounterInvestment:         currency,
		NetInvestmentAmount:       "CALC",
		NetCounterAmount:          "CALC",
		TradeFX:                   "",
		NotionalAmount:            "CALC",
		FundStructure:             "CALC",
		CounterFXDenomination:     baseCcy,
		CounterTDateFx:            counterFx,
		AccruedInterest:           "CALC",
		InvestmentAccruedInterest: "CALC",

		Expenses: BucketExpenses(map[model.ExpenseCode]decimal.Decimal{
			model.ExpenseMisc: custodianMiscFee(ev.RawLine, side),
		}),
	}

	rec.KeyValue = portfolio +
		"_" + model.FormatDate(rec.EventDate) +
		"_" + string(side) +
		"_" + ev.Str("SCTYID_ISIN") +
		"_" + keys.Fingerprint(ev.Num("GROSSBAS").Abs(), 10000)
	rec.UserTranId1 = rec.KeyValue

	return rec, nil
}

// resolveSecurityIDs tries the feed's identifier columns in fixed priority
// order: ISIN, then SEDOL, then CUSIP. Blank is the only skip condition.
func resolveSecurityIDs(ev model.TradeEvent, ref *refdata.Store, portfolio string) (string, error) {
	return ref.Resolve(portfolio, []refdata.Candidate{
		{Type: refdata.IDISIN, Value: ev.Str("SCTYID_ISIN")},
		{Type: refdata.IDSEDOL, Value: ev.Str("SCTYID_SEDOL")},
		{Type: refdata.IDCUSIP, Value: ev.Str("SCTYID_CUSIP")},
	})
}

// counterTDateFx carries the feed's FX rate only when the feed's idea of
// the book's base currency agrees with the book's actual setting. When the
// two disagree the rate describes a conversion that never happened. A
// missing feed-currency setting is a configuration error and propagates.
func counterTDateFx(ref *refdata.Store, portfolio, baseCcy string, fx decimal.Decimal) (string, error) {
	feedCcy, err := ref.FeedCurrency(portfolio)
	if err != nil {
		return "", err
	}
	if feedCcy != baseCcy {
		return "", nil
	}
	return fx.String(), nil
}

// custodianMiscFee backs the total fee out of the gross amount, carried to
// the trade currency. The feed has no fee breakdown, so the whole residual
// is miscellaneous. The residual sign is side-specific: a purchase pays
// gross above principal plus accrued, a sale receives gross below it.
func custodianMiscFee(line model.RawLine, side model.RecordType) decimal.Decimal {
	fee := line.Num("GROSSBAS").Abs().
		Sub(line.Num("PRINB").Abs()).
		Sub(line.Num("ACCRBAS").Abs())
	if side == model.Sell {
		fee = fee.Neg()
	}
	fee = fee.Mul(line.Num("FXRATE"))
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}
