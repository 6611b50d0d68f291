package pricing

import "github.com/shopspring/decimal"

const (
	// ages are discounted per year above this one
	discountBaseAge = 17
	maxDiscountAge  = 80
)

type AgeDiscountRange struct {
	MinAge     int
	MaxAge     int
	Multiplier decimal.Decimal
}

func (r AgeDiscountRange) Contains(age int) bool {
	return r.MinAge <= age && age <= r.MaxAge
}

// AgeDiscounts is evaluated in configured order, first match wins.
type AgeDiscounts []AgeDiscountRange

// Discount returns the absolute currency discount for age.
// Ages above 80 are priced as 80 with the last configured range's multiplier.
func (r AgeDiscounts) Discount(age int) Lookup {
	if age > maxDiscountAge && len(r) > 0 {
		return Lookup{
			Value:   yearsAboveBase(maxDiscountAge).Mul(r[len(r)-1].Multiplier),
			Outcome: Clamped,
		}
	}

	for _, ageRange := range r {
		if ageRange.Contains(age) {
			return Lookup{
				Value:   yearsAboveBase(age).Mul(ageRange.Multiplier),
				Outcome: Matched,
			}
		}
	}

	return unmatched()
}

func yearsAboveBase(age int) decimal.Decimal {
	return decimal.NewFromInt(int64(age - discountBaseAge))
}
