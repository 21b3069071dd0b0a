package reader

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
)

// isoDateFormat accepts exports that already render dates as text.
const isoDateFormat = "2006-01-02"

// excelEpoch is day zero of the spreadsheet serial date system.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// parseDate decodes a date cell: ISO text first, then the feed's numeric
// encoding per the format's date style.
func parseDate(cell string, style engine.DateStyle) (time.Time, error) {
	if t, err := time.Parse(isoDateFormat, cell); err == nil {
		return t, nil
	}

	num, err := decimal.NewFromString(cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("date cell %q is neither ISO nor numeric", cell)
	}

	switch style {
	case engine.DateCompact:
		return fromCompact(num)
	default:
		return fromSerial(num)
	}
}

// fromSerial decodes a spreadsheet serial day count.
func fromSerial(num decimal.Decimal) (time.Time, error) {
	days := num.IntPart()
	if days <= 0 {
		return time.Time{}, fmt.Errorf("serial date %s out of range", num)
	}
	return excelEpoch.AddDate(0, 0, int(days)), nil
}

// fromCompact decodes a date packed as mmddyyyy (or mddyyyy for
// single-digit months).
func fromCompact(num decimal.Decimal) (time.Time, error) {
	v := num.IntPart()
	month := v / 1000000
	day := (v % 1000000) / 10000
	year := v % 10000

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 {
		return time.Time{}, fmt.Errorf("compact date %s out of range", num)
	}
	return time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC), nil
}
