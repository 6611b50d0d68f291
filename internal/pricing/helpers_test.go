package pricing_test

import (
	"testing"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func defaultSchedule() pricing.RateSchedule {
	return pricing.RateSchedule{
		BaseHourRate:       d("12.56"),
		AdditionalHourRate: d("0.41"),
		BaseDayRate:        d("22.11"),
		AdditionalDayRate:  d("15.025"),
		BaseWeekRate:       d("96.25"),
		AdditionalWeekRate: d("80.50"),
		BaseFourWeekRate:   d("346.92"),
	}
}

func defaultAgeDiscounts() pricing.AgeDiscounts {
	return pricing.AgeDiscounts{
		{MinAge: 17, MaxAge: 23, Multiplier: d("0.3")},
		{MinAge: 24, MaxAge: 26, Multiplier: d("0.4")},
		{MinAge: 27, MaxAge: 80, Multiplier: d("0.5")},
	}
}

func defaultLicenseDiscounts() pricing.LicenseDiscounts {
	return pricing.LicenseDiscounts{
		{Label: pricing.LicenseUnderOneYear, Percent: d("0")},
		{Label: pricing.LicenseOneToTwoYears, Percent: d("5")},
		{Label: pricing.LicenseTwoToFourYears, Percent: d("10")},
		{Label: pricing.LicenseFiveToTenYears, Percent: d("15")},
		{Label: pricing.LicenseOverTenYears, Percent: d("20")},
	}
}

func defaultConfig() pricing.Config {
	return pricing.Config{
		Schedule:         defaultSchedule(),
		AgeDiscounts:     defaultAgeDiscounts(),
		LicenseDiscounts: defaultLicenseDiscounts(),
		UnmatchedPolicy:  pricing.UnmatchedZero,
	}
}
