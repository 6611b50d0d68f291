package schema

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type RoundedFloat float64

func (f RoundedFloat) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%.2f", f)), nil
}

// NewRoundedFloat rounds to cents before converting, so %.2f never re-rounds a binary float.
func NewRoundedFloat(d decimal.Decimal) RoundedFloat {
	return RoundedFloat(d.Round(2).InexactFloat64())
}
