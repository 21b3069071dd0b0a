package reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeconv-dev/tradeconv/internal/engine"
)

func TestParseDate_ISO(t *testing.T) {
	got, err := parseDate("2016-12-14", engine.DateSerial)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, 12, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Serial(t *testing.T) {
	tests := []struct {
		cell string
		want time.Time
	}{
		{"42718", time.Date(2016, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"42736", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"40359", time.Date(2010, 6, 30, 0, 0, 0, 0, time.UTC)},
		{"1", time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.cell, engine.DateSerial)
		require.NoError(t, err, "cell %s", tt.cell)
		assert.Equal(t, tt.want, got, "cell %s", tt.cell)
	}
}

func TestParseDate_Compact(t *testing.T) {
	tests := []struct {
		cell string
		want time.Time
	}{
		{"12142016", time.Date(2016, 12, 14, 0, 0, 0, 0, time.UTC)},
		// Single-digit months pack one digit shorter.
		{"1052016", time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"6302010", time.Date(2010, 6, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.cell, engine.DateCompact)
		require.NoError(t, err, "cell %s", tt.cell)
		assert.Equal(t, tt.want, got, "cell %s", tt.cell)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := parseDate("NOTADATE", engine.DateSerial)
	assert.Error(t, err)

	_, err = parseDate("-5", engine.DateSerial)
	assert.Error(t, err)

	// 13142016 would be month 13.
	_, err = parseDate("13142016", engine.DateCompact)
	assert.Error(t, err)

	_, err = parseDate("12140016", engine.DateCompact)
	assert.Error(t, err)
}
