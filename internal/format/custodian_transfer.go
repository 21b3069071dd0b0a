package format

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/keys"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

// CustodianTransfer converts the custodian export's transfer and issuer
// events: transfers in/out of external accounts (CSA/CSW), inter-account
// transfers (IATSA/IATSW), issuer calls (CALLED), and issuer buy-backs
// (TNDRL). These flow only through held-to-maturity bond books, carry no
// explicit trade expenses, and often report no price, which is then backed
// out of principal or book value.
type CustodianTransfer struct{}

var transferFXTolerance = decimal.RequireFromString("0.01")

var transferSides = map[string]model.RecordType{
	"CSA":    model.Buy,
	"IATSA":  model.Buy,
	"CSW":    model.Sell,
	"IATSW":  model.Sell,
	"CALLED": model.Sell,
	"TNDRL":  model.Sell,
}

// bookValueTypes are outflows whose amount comes from the transaction book
// value rather than principal.
var bookValueTypes = map[string]bool{
	"IATSW": true,
	"CSW":   true,
}

var transferTypes = func() map[string]model.Kind {
	types := make(map[string]model.Kind, len(custodianTypes)+2)
	for name, kind := range custodianTypes {
		types[name] = kind
	}
	types["RGLBVBAS"] = model.KindNumber
	types["RGLCCYCLS"] = model.KindNumber
	return types
}()

func (f *CustodianTransfer) Tag() string { return "custodian-transfer" }

func (f *CustodianTransfer) Description() string {
	return "custodian transfers, issuer calls and buy-backs (HTM books)"
}

func (f *CustodianTransfer) Types() map[string]model.Kind { return transferTypes }

func (f *CustodianTransfer) PortfolioField() string { return "ACCT_ACNO" }

func (f *CustodianTransfer) DateStyle(t refdata.Treatment) engine.DateStyle {
	if t == refdata.TreatmentHTM {
		return engine.DateSerial
	}
	return engine.DateCompact
}

func (f *CustodianTransfer) BlankNumericZero(field string) bool {
	return custodianNumericBlankZero[field] || field == "RGLBVBAS" || field == "RGLCCYCLS"
}

func (f *CustodianTransfer) Skip(line model.RawLine) bool {
	_, wanted := transferSides[line.Str("TRANTYP")]
	return !wanted
}

func (f *CustodianTransfer) Validate(line model.RawLine) error {
	if _, err := engine.CheckSide(line, "TRANTYP", transferSides); err != nil {
		return err
	}
	if err := engine.CheckDateOrder(line, "TRDDATE", "STLDATE", "ENTRDATE"); err != nil {
		return err
	}
	// Transfers have no independently reported settlement to reconcile
	// prices against; only the FX cross-check applies.
	return engine.CheckFX(line, "GROSSBAS", "FXRATE", "GROSSLCL", transferFXTolerance)
}

func (f *CustodianTransfer) Normalize(ev model.TradeEvent, ref *refdata.Store) (model.CanonicalRecord, error) {
	tranType := ev.Str("TRANTYP")
	side := transferSides[tranType]
	portfolio := ev.Str("ACCT_ACNO")

	// Only HTM books have transfers; anything else means the identifier
	// tables cannot answer for this line.
	if !ref.IsHTM(portfolio) {
		return model.CanonicalRecord{}, &refdata.InvestmentNotFoundError{Portfolio: portfolio}
	}

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

	price, err := transferPrice(ev.RawLine, tranType)
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
		Price:             price,
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

		// Bond transfers carry no explicit trade expenses.
		Expenses: BucketExpenses(nil),
	}

	netAmount := ev.Num("PRINB")
	if bookValueTypes[tranType] {
		netAmount = ev.Num("TRNBVBAS")
	}

	// The transaction subtype is part of the key: a call and a transfer of
	// the same bond on the same day must not collide.
	rec.KeyValue = portfolio +
		"_" + model.FormatDate(rec.EventDate) +
		"_" + tranType +
		"_" + string(side) +
		"_" + keys.InvestmentToken(investment) +
		keys.Fingerprint(netAmount.Abs(), 10000)
	rec.UserTranId1 = rec.KeyValue

	return rec, nil
}

// transferPrice uses the reported price when present and otherwise backs a
// percent-of-par price out of principal (inflows, calls, buy-backs) or
// book value (outflows).
func transferPrice(line model.RawLine, tranType string) (decimal.Decimal, error) {
	if price := line.Num("TRADEPRC"); price.IsPositive() {
		return price, nil
	}

	qty := line.Num("QTY")
	if qty.IsZero() {
		return decimal.Decimal{}, &engine.TradeInfoError{
			Line:   line.Line,
			Reason: fmt.Sprintf("cannot derive price for %s with zero quantity", tranType),
		}
	}

	amount := line.Num("PRINB")
	if bookValueTypes[tranType] {
		amount = line.Num("TRNBVBAS")
	}
	return amount.Mul(line.Num("FXRATE")).Div(qty).Mul(hundredPct).Abs(), nil
}

var hundredPct = decimal.NewFromInt(100)
