package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

func testStore(t *testing.T) *refdata.Store {
	t.Helper()
	store, err := refdata.NewStore(
		[]refdata.AccountContext{
			{Portfolio: "12307", LocationAccount: "CUST-HK", BaseCurrency: "HKD", FeedCurrency: "HKD", Treatment: refdata.TreatmentTrading},
			{Portfolio: "12734", LocationAccount: "CUST-BOND", BaseCurrency: "HKD", FeedCurrency: "USD", Treatment: refdata.TreatmentHTM},
			// Feed currency never configured; lookups against it must fail.
			{Portfolio: "12810", LocationAccount: "CUST-BOND2", BaseCurrency: "HKD", FeedCurrency: "", Treatment: refdata.TreatmentHTM},
		},
		[]refdata.IdentifierRecord{
			{Portfolio: "12307", Type: refdata.IDISIN, Value: "HK0000031069", Investment: "HK0000031069"},
			{Portfolio: "12307", Type: refdata.IDSEDOL, Value: "B01FLR7", Investment: "HK0000031069"},
			{Portfolio: "12734", Type: refdata.IDISIN, Value: "HK0000134780", Investment: "HK0000134780 HTM"},
			{Portfolio: "12734", Type: refdata.IDSEDOL, Value: "B4TH7N4", Investment: "HK0000134780 HTM"},
			{Portfolio: "12810", Type: refdata.IDISIN, Value: "HK0000134780", Investment: "HK0000134780 HTM"},
		},
	)
	require.NoError(t, err)
	return store
}

func date(y int, m time.Month, d int) model.Value {
	return model.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func rawLine(lineNo int, fields map[string]model.Value) model.RawLine {
	return model.RawLine{Line: lineNo, Fields: fields}
}

func event(lineNo int, fields map[string]model.Value) model.TradeEvent {
	return model.TradeEvent{RawLine: rawLine(lineNo, fields)}
}
