package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Format renders the amount with two fixed decimals behind the given symbol.
func (m Money) Format(symbol string) string {
	return symbol + m.Amount.StringFixed(2)
}
