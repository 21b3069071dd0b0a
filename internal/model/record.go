package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType is the canonical trade direction.
type RecordType string

const (
	Buy  RecordType = "Buy"
	Sell RecordType = "Sell"
)

// CanonicalRecord is the accounting-system import record. One is created
// per validated trade event; KeyValue and UserTranId1 are finalized by the
// key generator and duplicate resolver and never change afterward.
type CanonicalRecord struct {
	RecordType   RecordType
	RecordAction string
	KeyValue     string
	KeyName      string // serialized as KeyValue.KeyName
	UserTranId1  string

	Portfolio       string
	LocationAccount string
	Strategy        string
	Investment      string
	Broker          string

	EventDate        time.Time
	SettleDate       time.Time
	ActualSettleDate time.Time

	Quantity          decimal.Decimal
	Price             decimal.Decimal
	PriceDenomination string

	CounterInvestment         string
	NetInvestmentAmount       string
	NetCounterAmount          string
	TradeFX                   string
	NotionalAmount            string
	FundStructure             string
	CounterFXDenomination     string
	CounterTDateFx            string
	AccruedInterest           string
	InvestmentAccruedInterest string

	Expenses []Expense
}

// FormatDate renders a date the way the accounting import expects:
// yyyy-m-d with no zero padding.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}
