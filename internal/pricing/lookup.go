package pricing

import "github.com/shopspring/decimal"

type Outcome int

const (
	// Unmatched means no configured entry applied and Value is zero.
	Unmatched Outcome = iota
	Matched
	// Clamped means the age was above the oldest priced age and the last range was used.
	Clamped
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Clamped:
		return "clamped"
	default:
		return "unmatched"
	}
}

type Lookup struct {
	Value   decimal.Decimal
	Outcome Outcome
}

func unmatched() Lookup {
	return Lookup{Value: decimal.Zero, Outcome: Unmatched}
}
