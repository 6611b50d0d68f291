package schema

import (
	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"bitbucket.org/crgw/cover-quote/internal/tools/converting"
	"github.com/shopspring/decimal"
)

type AgeDiscountRange struct {
	MinAge     int     `json:"minAge"`
	MaxAge     int     `json:"maxAge"`
	Multiplier float64 `json:"multiplier"`
}

type LicenseDiscount struct {
	Range    string  `json:"range"`
	Discount float64 `json:"discount"`
}

// Settings is the stored configuration document of one profile.
type Settings struct {
	BaseHourRate       float64 `json:"baseHourRate"`
	AdditionalHourRate float64 `json:"additionalHourRate"`
	BaseDayRate        float64 `json:"baseDayRate"`
	AdditionalDayRate  float64 `json:"additionalDayRate"`
	BaseWeekRate       float64 `json:"baseWeekRate"`
	AdditionalWeekRate float64 `json:"additionalWeekRate"`
	BaseFourWeekRate   float64 `json:"baseFourWeekRate"`

	AgeDiscountRanges []AgeDiscountRange `json:"ageDiscountRanges"`
	LicenseDiscounts  []LicenseDiscount  `json:"licenseDiscounts"`

	UnmatchedPolicy *string `json:"unmatchedPolicy,omitempty"`
}

// PricingConfig converts the document into a fresh pricing snapshot. fallback is used
// when the document does not set a policy.
func (s Settings) PricingConfig(fallback pricing.UnmatchedPolicy) (pricing.Config, error) {
	policy := fallback
	if s.UnmatchedPolicy != nil {
		parsed, err := pricing.ParseUnmatchedPolicy(converting.Unwrap(s.UnmatchedPolicy))
		if err != nil {
			return pricing.Config{}, err
		}
		policy = parsed
	}

	ageDiscounts := make(pricing.AgeDiscounts, len(s.AgeDiscountRanges))
	for i, r := range s.AgeDiscountRanges {
		ageDiscounts[i] = pricing.AgeDiscountRange{
			MinAge:     r.MinAge,
			MaxAge:     r.MaxAge,
			Multiplier: decimal.NewFromFloat(r.Multiplier),
		}
	}

	licenseDiscounts := make(pricing.LicenseDiscounts, len(s.LicenseDiscounts))
	for i, l := range s.LicenseDiscounts {
		licenseDiscounts[i] = pricing.LicenseDiscountTier{
			Label:   l.Range,
			Percent: decimal.NewFromFloat(l.Discount),
		}
	}

	return pricing.Config{
		Schedule: pricing.RateSchedule{
			BaseHourRate:       decimal.NewFromFloat(s.BaseHourRate),
			AdditionalHourRate: decimal.NewFromFloat(s.AdditionalHourRate),
			BaseDayRate:        decimal.NewFromFloat(s.BaseDayRate),
			AdditionalDayRate:  decimal.NewFromFloat(s.AdditionalDayRate),
			BaseWeekRate:       decimal.NewFromFloat(s.BaseWeekRate),
			AdditionalWeekRate: decimal.NewFromFloat(s.AdditionalWeekRate),
			BaseFourWeekRate:   decimal.NewFromFloat(s.BaseFourWeekRate),
		},
		AgeDiscounts:     ageDiscounts,
		LicenseDiscounts: licenseDiscounts,
		UnmatchedPolicy:  policy,
	}, nil
}

type Issue struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func NewIssues(issues []pricing.Issue) []Issue {
	mapped := make([]Issue, len(issues))
	for i, issue := range issues {
		mapped[i] = Issue{
			Severity: string(issue.Severity),
			Code:     issue.Code,
			Field:    issue.Field,
			Message:  issue.Message,
		}
	}

	return mapped
}

type SettingsResponse struct {
	Profile  string   `json:"profile"`
	Settings Settings `json:"settings"`
	Issues   []Issue  `json:"issues"`
}

type PreviewRequestParams struct {
	Settings Settings           `json:"settings"`
	Request  QuoteRequestParams `json:"request"`
}
