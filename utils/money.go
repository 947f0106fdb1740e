package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatEUR renders a value as a EUR amount, e.g. "€1,505.00".
func FormatEUR(value decimal.Decimal) string {
	cur := money.New(0, money.EUR).Currency()
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatPercent renders a percent figure with two decimals and an explicit sign.
func FormatPercent(value decimal.Decimal) string {
	s := value.StringFixed(2) + "%"
	if value.IsPositive() {
		return "+" + s
	}
	return s
}
