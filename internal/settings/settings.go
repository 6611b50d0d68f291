// Package settings stores the per-profile pricing configuration documents.
package settings

import (
	"context"
	"errors"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/tools/converting"
)

const DefaultProfile = "default"

var ErrNotFound = errors.New("settings profile not found")

type Provider interface {
	Load(ctx context.Context, profile string) (schema.Settings, error)
	Save(ctx context.Context, profile string, settings schema.Settings) error
}

// Defaults is the built-in document served for DefaultProfile until one is saved.
func Defaults() schema.Settings {
	return schema.Settings{
		BaseHourRate:       12.56,
		AdditionalHourRate: 0.41,
		BaseDayRate:        22.11,
		AdditionalDayRate:  15.025,
		BaseWeekRate:       96.25,
		AdditionalWeekRate: 80.50,
		BaseFourWeekRate:   346.92,
		AgeDiscountRanges: []schema.AgeDiscountRange{
			{MinAge: 17, MaxAge: 23, Multiplier: 0.3},
			{MinAge: 24, MaxAge: 26, Multiplier: 0.4},
			{MinAge: 27, MaxAge: 80, Multiplier: 0.5},
		},
		LicenseDiscounts: []schema.LicenseDiscount{
			{Range: pricing.LicenseUnderOneYear, Discount: 0},
			{Range: pricing.LicenseOneToTwoYears, Discount: 5},
			{Range: pricing.LicenseTwoToFourYears, Discount: 10},
			{Range: pricing.LicenseFiveToTenYears, Discount: 15},
			{Range: pricing.LicenseOverTenYears, Discount: 20},
		},
		UnmatchedPolicy: converting.PointerToValue(string(pricing.UnmatchedZero)),
	}
}

// Resolve loads the profile and falls back to Defaults for DefaultProfile only.
func Resolve(ctx context.Context, provider Provider, profile string) (schema.Settings, error) {
	if provider == nil {
		if profile == DefaultProfile {
			return Defaults(), nil
		}

		return schema.Settings{}, ErrNotFound
	}

	document, err := provider.Load(ctx, profile)
	if errors.Is(err, ErrNotFound) && profile == DefaultProfile {
		return Defaults(), nil
	}

	return document, err
}
