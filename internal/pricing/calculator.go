package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnmatchedPolicy decides what happens when no age range or license tier applies.
type UnmatchedPolicy string

const (
	// UnmatchedZero prices the missing discount as zero and flags the result.
	UnmatchedZero UnmatchedPolicy = "zero"
	// UnmatchedReject fails the calculation.
	UnmatchedReject UnmatchedPolicy = "reject"
)

// ParseUnmatchedPolicy maps an empty string to UnmatchedZero.
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch UnmatchedPolicy(s) {
	case "", UnmatchedZero:
		return UnmatchedZero, nil
	case UnmatchedReject:
		return UnmatchedReject, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

type Config struct {
	Schedule         RateSchedule
	AgeDiscounts     AgeDiscounts
	LicenseDiscounts LicenseDiscounts
	UnmatchedPolicy  UnmatchedPolicy
}

type Request struct {
	Amount      decimal.Decimal
	Unit        DurationUnit
	Age         int
	LicenseHeld string
}

type Result struct {
	BasePrice       decimal.Decimal
	AgeDiscount     decimal.Decimal
	PriceAfterAge   decimal.Decimal
	LicensePercent  decimal.Decimal
	LicenseDiscount decimal.Decimal
	Total           decimal.Decimal

	AgeOutcome     Outcome
	LicenseOutcome Outcome
}

// Calculate runs the pipeline base price -> age discount -> license discount.
// The figures in the returned Result are unrounded; see Result.Rounded.
func Calculate(cfg Config, req Request) (Result, error) {
	basePrice, err := cfg.Schedule.BasePrice(req.Unit, req.Amount)
	if err != nil {
		return Result{}, err
	}

	age := cfg.AgeDiscounts.Discount(req.Age)
	if age.Outcome == Unmatched && cfg.UnmatchedPolicy == UnmatchedReject {
		return Result{}, fmt.Errorf("%w: %d", ErrUnmatchedAgeRange, req.Age)
	}

	// not clamped at zero, a discount larger than the base price gives a negative figure
	priceAfterAge := basePrice.Sub(age.Value)

	license := cfg.LicenseDiscounts.Percent(req.LicenseHeld)
	if license.Outcome == Unmatched && cfg.UnmatchedPolicy == UnmatchedReject {
		return Result{}, fmt.Errorf("%w: %q", ErrUnmatchedLicenseLabel, req.LicenseHeld)
	}

	licenseDiscount := priceAfterAge.Mul(license.Value).Div(hundred)

	return Result{
		BasePrice:       basePrice,
		AgeDiscount:     age.Value,
		PriceAfterAge:   priceAfterAge,
		LicensePercent:  license.Value,
		LicenseDiscount: licenseDiscount,
		Total:           priceAfterAge.Sub(licenseDiscount),
		AgeOutcome:      age.Outcome,
		LicenseOutcome:  license.Outcome,
	}, nil
}

// Rounded rounds every money figure independently to MoneyPlaces.
func (r Result) Rounded() Result {
	rounded := r
	rounded.BasePrice = roundMoney(r.BasePrice)
	rounded.AgeDiscount = roundMoney(r.AgeDiscount)
	rounded.PriceAfterAge = roundMoney(r.PriceAfterAge)
	rounded.LicenseDiscount = roundMoney(r.LicenseDiscount)
	rounded.Total = roundMoney(r.Total)
	return rounded
}

const (
	WarningUnmatchedAgeRange     = "UNMATCHED_AGE_RANGE"
	WarningUnmatchedLicenseLabel = "UNMATCHED_LICENSE_LABEL"
	WarningAgeClamped            = "AGE_CLAMPED"
)

type Warning struct {
	Code    string
	Message string
}

// Warnings lists the soft outcomes of the calculation, empty when every lookup matched.
func (r Result) Warnings() []Warning {
	warnings := []Warning{}

	switch r.AgeOutcome {
	case Unmatched:
		warnings = append(warnings, Warning{
			Code:    WarningUnmatchedAgeRange,
			Message: "no age discount range covers the applicant age, age discount set to 0",
		})
	case Clamped:
		warnings = append(warnings, Warning{
			Code:    WarningAgeClamped,
			Message: fmt.Sprintf("applicant age above %d, discount priced at age %d with the last range", maxDiscountAge, maxDiscountAge),
		})
	}

	if r.LicenseOutcome == Unmatched {
		warnings = append(warnings, Warning{
			Code:    WarningUnmatchedLicenseLabel,
			Message: "no license discount configured for the label, license discount set to 0",
		})
	}

	return warnings
}
