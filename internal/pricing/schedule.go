package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type DurationUnit string

const (
	Hours DurationUnit = "hours"
	Days  DurationUnit = "days"
	Weeks DurationUnit = "weeks"
)

var (
	one         = decimal.NewFromInt(1)
	hoursPerDay = decimal.NewFromInt(24)
	fourWeeks   = decimal.NewFromInt(4)
)

func (u DurationUnit) Valid() bool {
	switch u {
	case Hours, Days, Weeks:
		return true
	}

	return false
}

// ParseDurationUnit accepts only the exact unit names.
func ParseDurationUnit(s string) (DurationUnit, error) {
	unit := DurationUnit(s)
	if !unit.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}

	return unit, nil
}

// RateSchedule holds the base and incremental rates per duration unit.
// BaseFourWeekRate is a flat price for exactly four weeks.
type RateSchedule struct {
	BaseHourRate       decimal.Decimal
	AdditionalHourRate decimal.Decimal
	BaseDayRate        decimal.Decimal
	AdditionalDayRate  decimal.Decimal
	BaseWeekRate       decimal.Decimal
	AdditionalWeekRate decimal.Decimal
	BaseFourWeekRate   decimal.Decimal
}

// BasePrice returns the undiscounted price for amount units.
//
// Hour requests of 24 or more are billed as ceil(amount/24) days.
func (s RateSchedule) BasePrice(unit DurationUnit, amount decimal.Decimal) (decimal.Decimal, error) {
	if !unit.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	switch unit {
	case Hours:
		if amount.GreaterThanOrEqual(hoursPerDay) {
			return s.BasePrice(Days, amount.Div(hoursPerDay).Ceil())
		}

		return incremental(s.BaseHourRate, s.AdditionalHourRate, amount), nil
	case Days:
		return incremental(s.BaseDayRate, s.AdditionalDayRate, amount), nil
	default:
		if amount.Equal(fourWeeks) {
			return s.BaseFourWeekRate, nil
		}

		return incremental(s.BaseWeekRate, s.AdditionalWeekRate, amount), nil
	}
}

func incremental(base, additional, amount decimal.Decimal) decimal.Decimal {
	if amount.Equal(one) {
		return base
	}

	return base.Add(amount.Sub(one).Mul(additional))
}

func (s RateSchedule) rates() []namedRate {
	return []namedRate{
		{"baseHourRate", s.BaseHourRate},
		{"additionalHourRate", s.AdditionalHourRate},
		{"baseDayRate", s.BaseDayRate},
		{"additionalDayRate", s.AdditionalDayRate},
		{"baseWeekRate", s.BaseWeekRate},
		{"additionalWeekRate", s.AdditionalWeekRate},
		{"baseFourWeekRate", s.BaseFourWeekRate},
	}
}

type namedRate struct {
	name  string
	value decimal.Decimal
}
