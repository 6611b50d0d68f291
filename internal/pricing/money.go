package pricing

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every reported figure is rounded to.
// Rounding is half away from zero (decimal.Round).
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
