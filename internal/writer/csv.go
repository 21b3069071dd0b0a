// Package writer serializes canonical records into the accounting
// system's quick-import CSV layout.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tradeconv-dev/tradeconv/internal/model"
)

// Header is the quick-import CSV header. The trade_expenses field expands
// into the three trailing TradeExpenses columns.
const Header = "RecordType,RecordAction,KeyValue,KeyValue.KeyName,UserTranId1," +
	"Portfolio,LocationAccount,Strategy,Investment,Broker," +
	"EventDate,SettleDate,ActualSettleDate,Quantity,Price,PriceDenomination," +
	"CounterInvestment,NetInvestmentAmount,NetCounterAmount,TradeFX," +
	"NotionalAmount,FundStructure,CounterFXDenomination,CounterTDateFx," +
	"AccruedInterest,InvestmentAccruedInterest," +
	"TradeExpenses.ExpenseNumber,TradeExpenses.ExpenseCode,TradeExpenses.ExpenseAmt"

const (
	numFields     = 29
	colExpenseNum = 26
	colExpenseCod = 27
	colExpenseAmt = 28
)

// WriteRecords writes records to a quick-import CSV, header included.
// Each record emits one row per non-zero expense, with the non-expense
// columns filled only on the first row; a record with no non-zero
// expenses emits a single bare row. The fixed expense category order
// keeps the expansion deterministic across runs.
func WriteRecords(w io.Writer, records []model.CanonicalRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		for _, row := range marshalRecord(rec) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing record %d: %w", i+1, err)
			}
		}
	}
	return cw.Error()
}

// WriteFile writes records to a quick-import CSV file.
func WriteFile(path string, records []model.CanonicalRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteRecords(f, records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func marshalRecord(rec model.CanonicalRecord) [][]string {
	var nonZero []model.Expense
	for _, e := range rec.Expenses {
		if !e.Amount.IsZero() {
			nonZero = append(nonZero, e)
		}
	}

	if len(nonZero) == 0 {
		return [][]string{recordRow(rec)}
	}

	rows := make([][]string, 0, len(nonZero))
	for i, e := range nonZero {
		row := make([]string, numFields)
		if i == 0 {
			row = recordRow(rec)
		}
		row[colExpenseNum] = strconv.Itoa(i + 1)
		row[colExpenseCod] = string(e.Code)
		row[colExpenseAmt] = e.Amount.String()
		rows = append(rows, row)
	}
	return rows
}

func recordRow(rec model.CanonicalRecord) []string {
	row := make([]string, numFields)
	row[0] = string(rec.RecordType)
	row[1] = rec.RecordAction
	row[2] = rec.KeyValue
	row[3] = rec.KeyName
	row[4] = rec.UserTranId1
	row[5] = rec.Portfolio
	row[6] = rec.LocationAccount
	row[7] = rec.Strategy
	row[8] = rec.Investment
	row[9] = rec.Broker
	row[10] = model.FormatDate(rec.EventDate)
	row[11] = model.FormatDate(rec.SettleDate)
	row[12] = model.FormatDate(rec.ActualSettleDate)
	row[13] = rec.Quantity.String()
	row[14] = rec.Price.String()
	row[15] = rec.PriceDenomination
	row[16] = rec.CounterInvestment
	row[17] = rec.NetInvestmentAmount
	row[18] = rec.NetCounterAmount
	row[19] = rec.TradeFX
	row[20] = rec.NotionalAmount
	row[21] = rec.FundStructure
	row[22] = rec.CounterFXDenomination
	row[23] = rec.CounterTDateFx
	row[24] = rec.AccruedInterest
	row[25] = rec.InvestmentAccruedInterest
	return row
}
