package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CheckDateOrder enforces settlement date >= trade date, and entry date >=
// trade date when entryField is non-empty.
func CheckDateOrder(line model.RawLine, tradeField, settleField, entryField string) error {
	trade := line.Date(tradeField)
	settle := line.Date(settleField)
	if settle.Before(trade) {
		return &TradeInfoError{
			Line: line.Line,
			Reason: fmt.Sprintf("settle date %s before trade date %s",
				model.FormatDate(settle), model.FormatDate(trade)),
		}
	}
	if entryField != "" {
		entry := line.Date(entryField)
		if entry.Before(trade) {
			return &TradeInfoError{
				Line: line.Line,
				Reason: fmt.Sprintf("entry date %s before trade date %s",
					model.FormatDate(entry), model.FormatDate(trade)),
			}
		}
	}
	return nil
}

// CheckFX cross-checks the base-currency gross amount against the local
// gross amount through the reported FX rate: |grossBase*fx - grossLocal|
// must stay within tol.
func CheckFX(line model.RawLine, grossBaseField, fxField, grossLocalField string, tol decimal.Decimal) error {
	grossBase := line.Num(grossBaseField)
	fx := line.Num(fxField)
	grossLocal := line.Num(grossLocalField)

	diff := grossBase.Mul(fx).Sub(grossLocal).Abs()
	if diff.GreaterThan(tol) {
		return &TradeInfoError{
			Line: line.Line,
			Reason: fmt.Sprintf("FX cross-check failed: %s * %s = %s, reported %s (diff %s)",
				grossBase, fx, grossBase.Mul(fx), grossLocal, diff),
		}
	}
	return nil
}

// ReconcileAmount recomputes a settlement amount from quantity, price, and
// signed fees and compares it against the independently reported total.
// A raw line may be an equity trade (amount = qty*price) or a bond trade
// (amount = qty/100*price, price quoted as percent of par), so both
// formulas are attempted and the line passes when either lands within tol.
// The caller signs fees per the source's convention (added for buys,
// subtracted for sells, or zero when the feed reports no fee breakdown).
func ReconcileAmount(lineNo int, qty, price, fees, reported, tol decimal.Decimal) error {
	equity := qty.Mul(price).Add(fees)
	bond := qty.Div(hundred).Mul(price).Add(fees)

	equityDiff := equity.Sub(reported).Abs()
	bondDiff := bond.Sub(reported).Abs()
	if equityDiff.GreaterThan(tol) && bondDiff.GreaterThan(tol) {
		return &TradeInfoError{
			Line: lineNo,
			Reason: fmt.Sprintf("settlement amount mismatch: computed %s (equity) / %s (bond), reported %s",
				equity, bond, reported),
		}
	}
	return nil
}

// CheckSide enforces membership of a side/type value in the format's
// recognized vocabulary and returns the canonical direction.
func CheckSide(line model.RawLine, field string, vocab map[string]model.RecordType) (model.RecordType, error) {
	raw := line.Str(field)
	side, ok := vocab[raw]
	if !ok {
		return "", &TradeInfoError{
			Line:   line.Line,
			Reason: fmt.Sprintf("unrecognized %s value %q", field, raw),
		}
	}
	return side, nil
}
