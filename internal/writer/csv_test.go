package writer

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeconv-dev/tradeconv/internal/model"
)

func sampleRecord() model.CanonicalRecord {
	rec := model.CanonicalRecord{
		RecordType:   model.Buy,
		RecordAction: "InsertUpdate",
		KeyValue:     "12307_2016-12-14_Buy_HK0000031069_301146000_BOCI",
		KeyName:      "UserTranId1",
		UserTranId1:  "12307_2016-12-14_Buy_HK0000031069_301146000_BOCI",

		Portfolio:       "12307",
		LocationAccount: "CUST-HK",
		Strategy:        "Default",
		Investment:      "HK0000031069",
		Broker:          "BOCI-EQ",

		EventDate:        time.Date(2016, 12, 14, 0, 0, 0, 0, time.UTC),
		SettleDate:       time.Date(2016, 12, 16, 0, 0, 0, 0, time.UTC),
		ActualSettleDate: time.Date(2016, 12, 16, 0, 0, 0, 0, time.UTC),

		Quantity:          decimal.RequireFromString("20000"),
		Price:             decimal.RequireFromString("1.5"),
		PriceDenomination: "CALC",

		CounterInvestment:         "HKD",
		NetInvestmentAmount:       "CALC",
		NetCounterAmount:          "CALC",
		NotionalAmount:            "CALC",
		FundStructure:             "CALC",
		CounterFXDenomination:     "USD",
		AccruedInterest:           "CALC",
		InvestmentAccruedInterest: "CALC",

		Expenses: model.ZeroExpenses(),
	}
	return rec
}

func writeAndParse(t *testing.T, records []model.CanonicalRecord) [][]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRecords_Header(t *testing.T) {
	rows := writeAndParse(t, nil)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 29)
	assert.Equal(t, "RecordType", rows[0][0])
	assert.Equal(t, "KeyValue.KeyName", rows[0][3])
	assert.Equal(t, "TradeExpenses.ExpenseAmt", rows[0][28])
}

func TestWriteRecords_NoExpensesBareRow(t *testing.T) {
	rows := writeAndParse(t, []model.CanonicalRecord{sampleRecord()})
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "Buy", row[0])
	assert.Equal(t, "InsertUpdate", row[1])
	assert.Equal(t, "UserTranId1", row[3])
	assert.Equal(t, "12307", row[5])
	assert.Equal(t, "2016-12-14", row[10])
	assert.Equal(t, "2016-12-16", row[11])
	assert.Equal(t, "20000", row[13])
	assert.Equal(t, "1.5", row[14])

	// All five buckets are zero: no expense rows, expense columns empty.
	assert.Empty(t, row[26])
	assert.Empty(t, row[27])
	assert.Empty(t, row[28])
}

func TestWriteRecords_ExpenseExpansion(t *testing.T) {
	rec := sampleRecord()
	rec.Expenses[0].Amount = decimal.RequireFromString("75")  // commission
	rec.Expenses[4].Amount = decimal.RequireFromString("1.5") // misc

	rows := writeAndParse(t, []model.CanonicalRecord{rec})
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "Buy", first[0])
	assert.Equal(t, "1", first[26])
	assert.Equal(t, "CommissionTradeExpense", first[27])
	assert.Equal(t, "75", first[28])

	// Continuation rows carry only the expense columns.
	second := rows[2]
	assert.Empty(t, second[0])
	assert.Empty(t, second[5])
	assert.Equal(t, "2", second[26])
	assert.Equal(t, "Misc_Fee", second[27])
	assert.Equal(t, "1.5", second[28])
}

func TestWriteRecords_ZeroExpensesSkipped(t *testing.T) {
	rec := sampleRecord()
	rec.Expenses[2].Amount = decimal.RequireFromString("12") // exchange fee only

	rows := writeAndParse(t, []model.CanonicalRecord{rec})
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[1][26])
	assert.Equal(t, "Exchange_Fee", rows[1][27])
}

func TestWriteRecords_MultipleRecords(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.KeyValue = a.KeyValue + "_1"
	b.UserTranId1 = b.KeyValue
	b.Expenses[0].Amount = decimal.RequireFromString("10")

	rows := writeAndParse(t, []model.CanonicalRecord{a, b})
	require.Len(t, rows, 3)
	assert.Equal(t, a.KeyValue, rows[1][2])
	assert.Equal(t, b.KeyValue, rows[2][2])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, WriteFile(path, []model.CanonicalRecord{sampleRecord()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "RecordType,RecordAction")
	assert.Contains(t, string(data), "12307_2016-12-14_Buy_HK0000031069_301146000_BOCI")
}
