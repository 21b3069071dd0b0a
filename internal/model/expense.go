package model

import "github.com/shopspring/decimal"

// ExpenseCode identifies one of the five fixed trade-expense buckets.
type ExpenseCode string

const (
	ExpenseCommission ExpenseCode = "CommissionTradeExpense"
	ExpenseStampDuty  ExpenseCode = "Stamp_Duty"
	ExpenseExchange   ExpenseCode = "Exchange_Fee"
	ExpenseLevy       ExpenseCode = "Transaction_Levy"
	ExpenseMisc       ExpenseCode = "Misc_Fee"
)

// ExpenseCodes is the fixed serialization order of the taxonomy.
var ExpenseCodes = []ExpenseCode{
	ExpenseCommission,
	ExpenseStampDuty,
	ExpenseExchange,
	ExpenseLevy,
	ExpenseMisc,
}

// Expense is one (category, amount) pair of a record's trade expenses.
type Expense struct {
	Code   ExpenseCode
	Amount decimal.Decimal
}

// ZeroExpenses returns the full taxonomy in fixed order, all amounts zero.
// Records always carry all five buckets; a category absent from the source
// is present with value 0, never omitted.
func ZeroExpenses() []Expense {
	out := make([]Expense, len(ExpenseCodes))
	for i, code := range ExpenseCodes {
		out[i] = Expense{Code: code, Amount: decimal.Zero}
	}
	return out
}
