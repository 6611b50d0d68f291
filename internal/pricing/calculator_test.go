package pricing_test

import (
	"sync"
	"testing"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Run("should price a one hour quote", func(t *testing.T) {
		result, err := pricing.Calculate(defaultConfig(), pricing.Request{
			Amount:      d("1"),
			Unit:        pricing.Hours,
			Age:         25,
			LicenseHeld: "2-4 Years",
		})
		require.NoError(t, err)

		assertDecimal(t, "12.56", result.BasePrice)
		assertDecimal(t, "3.2", result.AgeDiscount)
		assertDecimal(t, "9.36", result.PriceAfterAge)
		assertDecimal(t, "10", result.LicensePercent)
		assertDecimal(t, "0.936", result.LicenseDiscount)
		assertDecimal(t, "8.424", result.Total)

		rounded := result.Rounded()
		assertDecimal(t, "12.56", rounded.BasePrice)
		assertDecimal(t, "3.20", rounded.AgeDiscount)
		assertDecimal(t, "9.36", rounded.PriceAfterAge)
		assertDecimal(t, "0.94", rounded.LicenseDiscount)
		assertDecimal(t, "8.42", rounded.Total)
		assert.Empty(t, result.Warnings())
	})

	t.Run("should use the four week rate for any applicant", func(t *testing.T) {
		for _, age := range []int{18, 25, 60, 95} {
			for _, label := range pricing.LicenseLabels() {
				result, err := pricing.Calculate(defaultConfig(), pricing.Request{
					Amount:      d("4"),
					Unit:        pricing.Weeks,
					Age:         age,
					LicenseHeld: label,
				})
				require.NoError(t, err)
				assertDecimal(t, "346.92", result.Rounded().BasePrice)
			}
		}
	})

	t.Run("should round half away from zero", func(t *testing.T) {
		result, err := pricing.Calculate(defaultConfig(), pricing.Request{
			Amount:      d("25"),
			Unit:        pricing.Hours,
			Age:         17,
			LicenseHeld: pricing.LicenseUnderOneYear,
		})
		require.NoError(t, err)

		assertDecimal(t, "37.135", result.BasePrice)
		assertDecimal(t, "37.14", result.Rounded().BasePrice)
		assertDecimal(t, "37.14", result.Rounded().Total)
	})

	t.Run("should apply the license discount after the age discount", func(t *testing.T) {
		cfg := defaultConfig()

		for _, unit := range []pricing.DurationUnit{pricing.Hours, pricing.Days, pricing.Weeks} {
			for amount := int64(1); amount <= 30; amount += 3 {
				for _, age := range []int{17, 22, 25, 40, 80, 81} {
					for _, label := range append(pricing.LicenseLabels(), "unknown") {
						result, err := pricing.Calculate(cfg, pricing.Request{
							Amount:      decimal.NewFromInt(amount),
							Unit:        unit,
							Age:         age,
							LicenseHeld: label,
						})
						require.NoError(t, err)

						afterAge := result.BasePrice.Sub(result.AgeDiscount)
						expected := afterAge.Sub(afterAge.Mul(result.LicensePercent).Div(decimal.NewFromInt(100)))
						assert.True(t, expected.Equal(result.Total), "%s %d age %d %s", unit, amount, age, label)
					}
				}
			}
		}
	})

	t.Run("should keep negative prices when the age discount is larger", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.AgeDiscounts = pricing.AgeDiscounts{{MinAge: 17, MaxAge: 80, Multiplier: d("5")}}

		result, err := pricing.Calculate(cfg, pricing.Request{
			Amount:      d("1"),
			Unit:        pricing.Hours,
			Age:         30,
			LicenseHeld: pricing.LicenseOverTenYears,
		})
		require.NoError(t, err)

		assertDecimal(t, "-52.44", result.PriceAfterAge)
		assertDecimal(t, "-10.488", result.LicenseDiscount)
		assertDecimal(t, "-41.952", result.Total)
		assertDecimal(t, "-10.49", result.Rounded().LicenseDiscount)
		assertDecimal(t, "-41.95", result.Rounded().Total)
	})

	t.Run("should reject invalid duration", func(t *testing.T) {
		tests := []struct {
			name     string
			request  pricing.Request
			expected error
		}{
			{"zero amount", pricing.Request{Amount: d("0"), Unit: pricing.Hours, Age: 30}, pricing.ErrInvalidAmount},
			{"negative amount", pricing.Request{Amount: d("-1"), Unit: pricing.Days, Age: 30}, pricing.ErrInvalidAmount},
			{"unknown unit", pricing.Request{Amount: d("1"), Unit: "months", Age: 30}, pricing.ErrInvalidUnit},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				result, err := pricing.Calculate(defaultConfig(), test.request)
				assert.ErrorIs(t, err, test.expected)
				assert.Equal(t, pricing.Result{}, result)
			})
		}
	})

	t.Run("should flag unmatched lookups under the zero policy", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.AgeDiscounts = pricing.AgeDiscounts{{MinAge: 21, MaxAge: 80, Multiplier: d("0.5")}}

		result, err := pricing.Calculate(cfg, pricing.Request{
			Amount:      d("1"),
			Unit:        pricing.Days,
			Age:         19,
			LicenseHeld: "3 Years",
		})
		require.NoError(t, err)

		assert.Equal(t, pricing.Unmatched, result.AgeOutcome)
		assert.Equal(t, pricing.Unmatched, result.LicenseOutcome)
		assertDecimal(t, "22.11", result.Total)

		warnings := result.Warnings()
		require.Len(t, warnings, 2)
		assert.Equal(t, pricing.WarningUnmatchedAgeRange, warnings[0].Code)
		assert.Equal(t, pricing.WarningUnmatchedLicenseLabel, warnings[1].Code)
	})

	t.Run("should flag clamped ages", func(t *testing.T) {
		result, err := pricing.Calculate(defaultConfig(), pricing.Request{
			Amount:      d("2"),
			Unit:        pricing.Days,
			Age:         91,
			LicenseHeld: pricing.LicenseOverTenYears,
		})
		require.NoError(t, err)

		assert.Equal(t, pricing.Clamped, result.AgeOutcome)
		assertDecimal(t, "31.5", result.AgeDiscount)
		require.Len(t, result.Warnings(), 1)
		assert.Equal(t, pricing.WarningAgeClamped, result.Warnings()[0].Code)
	})

	t.Run("should fail unmatched lookups under the reject policy", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.UnmatchedPolicy = pricing.UnmatchedReject
		cfg.AgeDiscounts = pricing.AgeDiscounts{{MinAge: 21, MaxAge: 80, Multiplier: d("0.5")}}

		_, err := pricing.Calculate(cfg, pricing.Request{Amount: d("1"), Unit: pricing.Days, Age: 19, LicenseHeld: pricing.LicenseOverTenYears})
		assert.ErrorIs(t, err, pricing.ErrUnmatchedAgeRange)

		_, err = pricing.Calculate(cfg, pricing.Request{Amount: d("1"), Unit: pricing.Days, Age: 30, LicenseHeld: "3 Years"})
		assert.ErrorIs(t, err, pricing.ErrUnmatchedLicenseLabel)

		_, err = pricing.Calculate(cfg, pricing.Request{Amount: d("1"), Unit: pricing.Days, Age: 85, LicenseHeld: pricing.LicenseOverTenYears})
		assert.NoError(t, err)
	})

	t.Run("should not mutate the configuration", func(t *testing.T) {
		cfg := defaultConfig()
		before := defaultConfig()

		_, err := pricing.Calculate(cfg, pricing.Request{Amount: d("3"), Unit: pricing.Weeks, Age: 44, LicenseHeld: pricing.LicenseFiveToTenYears})
		require.NoError(t, err)

		assert.Equal(t, before, cfg)
	})

	t.Run("should give the same result to concurrent callers", func(t *testing.T) {
		cfg := defaultConfig()
		request := pricing.Request{Amount: d("7"), Unit: pricing.Hours, Age: 33, LicenseHeld: pricing.LicenseOneToTwoYears}

		expected, err := pricing.Calculate(cfg, request)
		require.NoError(t, err)

		wait := sync.WaitGroup{}
		results := make(chan pricing.Result, 64)

		for i := 0; i < 64; i++ {
			wait.Add(1)
			go func() {
				defer wait.Done()
				result, _ := pricing.Calculate(cfg, request)
				results <- result
			}()
		}

		wait.Wait()
		close(results)

		for result := range results {
			assert.True(t, expected.Total.Equal(result.Total))
		}
	})
}

func TestParseUnmatchedPolicy(t *testing.T) {
	policy, err := pricing.ParseUnmatchedPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, pricing.UnmatchedZero, policy)

	policy, err = pricing.ParseUnmatchedPolicy("reject")
	assert.NoError(t, err)
	assert.Equal(t, pricing.UnmatchedReject, policy)

	_, err = pricing.ParseUnmatchedPolicy("ignore")
	assert.ErrorIs(t, err, pricing.ErrInvalidPolicy)
}
