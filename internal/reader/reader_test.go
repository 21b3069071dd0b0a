package reader

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeconv-dev/tradeconv/internal/format"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

func testStore(t *testing.T) *refdata.Store {
	t.Helper()
	store, err := refdata.Load("../../testdata/refdata")
	require.NoError(t, err)
	return store
}

func TestParse_ListCoBlotter(t *testing.T) {
	data, err := os.ReadFile("../../testdata/listco_blotter.csv")
	require.NoError(t, err)

	lines, err := Parse(strings.NewReader(string(data)), &format.ListCo{}, testStore(t))
	require.NoError(t, err)

	// The blank row terminates the data block; the totals row below it is
	// never parsed.
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "12307", first.Str("Acct#"))
	assert.Equal(t, "B", first.Str("B/S"))
	assert.Equal(t, "20000", first.Num("Units").String())
	assert.Equal(t, "30114.6", first.Num("Net Setl").String())

	// Serial 42718 decodes against the spreadsheet epoch.
	assert.Equal(t, "2016-12-14", model.FormatDate(first.Date("Trd Dt")))
	assert.Equal(t, "2016-12-16", model.FormatDate(first.Date("Setl Dt")))

	second := lines[1]
	assert.Equal(t, 3, second.Line)
	assert.Equal(t, "S", second.Str("B/S"))
}

func TestParse_CustodianCompactDates(t *testing.T) {
	data, err := os.ReadFile("../../testdata/custodian_export.csv")
	require.NoError(t, err)

	lines, err := Parse(strings.NewReader(string(data)), &format.Custodian{}, testStore(t))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// 12307 is a trading book, so 12142016 decodes as a compact date.
	assert.Equal(t, "2016-12-14", model.FormatDate(lines[0].Date("TRDDATE")))
	assert.Equal(t, "2016-12-19", model.FormatDate(lines[2].Date("STLDATE")))
}

func TestParse_BlankNumericZero(t *testing.T) {
	data, err := os.ReadFile("../../testdata/custodian_export.csv")
	require.NoError(t, err)

	lines, err := Parse(strings.NewReader(string(data)), &format.Custodian{}, testStore(t))
	require.NoError(t, err)

	// The FX line leaves its numeric columns blank; they read as zero.
	fx := lines[1]
	assert.Equal(t, "FXSpot", fx.Str("TRANTYP"))
	assert.Equal(t, model.KindNumber, fx.Get("QTY").Kind)
	assert.True(t, fx.Num("QTY").IsZero())
	assert.True(t, fx.Num("GROSSBAS").IsZero())
}

func TestParse_UndecodableCellStaysString(t *testing.T) {
	csv := "Acct#,Trade#,B/S,ISIN,BrkCd,Cur,Trd Dt,Setl Dt,Units,Unit Price,Commission,Tax,Fees,SEC Fee,Net Setl\n" +
		"12307,T-001,B,HK0000031069,BOCI,HKD,42718,42720,lots,1.5,75,30,1.5,8.1,30114.6\n"

	lines, err := Parse(strings.NewReader(csv), &format.ListCo{}, testStore(t))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// The reader does not reject the cell; the engine's type check does.
	v := lines[0].Get("Units")
	assert.Equal(t, model.KindString, v.Kind)
	assert.Equal(t, "lots", v.Str)
}

func TestParse_HeaderStopsAtBlankCell(t *testing.T) {
	csv := "Acct#,B/S,,ignored\n12307,B,x,y\n"
	lines, err := Parse(strings.NewReader(csv), &format.ListCo{}, testStore(t))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "B", lines[0].Str("B/S"))
	assert.True(t, lines[0].Get("ignored").IsBlank())
}

func TestParse_UnknownPortfolio(t *testing.T) {
	csv := "Acct#,Trd Dt\n99999,42718\n"
	_, err := Parse(strings.NewReader(csv), &format.ListCo{}, testStore(t))
	require.Error(t, err)
	var unknown *refdata.UnknownPortfolioError
	assert.ErrorAs(t, err, &unknown)
}

func TestParse_Empty(t *testing.T) {
	lines, err := Parse(strings.NewReader(""), &format.ListCo{}, testStore(t))
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestParse_NoHeaderFields(t *testing.T) {
	_, err := Parse(strings.NewReader(",,\n"), &format.ListCo{}, testStore(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header fields")
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile("does-not-exist.csv", &format.ListCo{}, testStore(t))
	assert.Error(t, err)
}
