package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionDividend TransactionType = "dividend"
	TransactionFee      TransactionType = "fee"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionDividend, TransactionFee:
		return true
	}
	return false
}

type Transaction struct {
	ID           int64
	AssetSymbol  string
	Type         TransactionType
	Amount       decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalValue   decimal.Decimal
	Fees         decimal.Decimal
	Platform     string
	Date         time.Time
	Notes        string
}

type TransactionInput struct {
	AssetSymbol  string
	Type         TransactionType
	Amount       decimal.Decimal
	PricePerUnit decimal.Decimal
	Fees         decimal.Decimal
	Platform     string
	Date         *time.Time // now when nil
	Notes        string
}
