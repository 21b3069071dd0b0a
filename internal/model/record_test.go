package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate_NoZeroPadding(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2016, 12, 14, 0, 0, 0, 0, time.UTC), "2016-12-14"},
		{time.Date(2010, 6, 30, 0, 0, 0, 0, time.UTC), "2010-6-30"},
		{time.Date(2017, 1, 5, 0, 0, 0, 0, time.UTC), "2017-1-5"},
		{time.Date(2020, 11, 3, 0, 0, 0, 0, time.UTC), "2020-11-3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.date))
	}
}

func TestZeroExpenses_FullTaxonomyInOrder(t *testing.T) {
	exps := ZeroExpenses()
	assert.Len(t, exps, 5)

	want := []ExpenseCode{
		ExpenseCommission,
		ExpenseStampDuty,
		ExpenseExchange,
		ExpenseLevy,
		ExpenseMisc,
	}
	for i, e := range exps {
		assert.Equal(t, want[i], e.Code)
		assert.True(t, e.Amount.IsZero())
	}
}

func TestZeroExpenses_Independent(t *testing.T) {
	a := ZeroExpenses()
	b := ZeroExpenses()
	a[0].Code = "mutated"
	assert.Equal(t, ExpenseCommission, b[0].Code)
}
