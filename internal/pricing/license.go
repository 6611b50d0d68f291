package pricing

import "github.com/shopspring/decimal"

const (
	LicenseUnderOneYear   = "Under 1 Year"
	LicenseOneToTwoYears  = "1-2 Years"
	LicenseTwoToFourYears = "2-4 Years"
	LicenseFiveToTenYears = "5-10 Years"
	LicenseOverTenYears   = "10+ Years"
)

var licenseLabels = [...]string{
	LicenseUnderOneYear,
	LicenseOneToTwoYears,
	LicenseTwoToFourYears,
	LicenseFiveToTenYears,
	LicenseOverTenYears,
}

// LicenseLabels returns the closed set of license-held labels, shortest first.
func LicenseLabels() []string {
	labels := make([]string, len(licenseLabels))
	copy(labels, licenseLabels[:])
	return labels
}

func IsLicenseLabel(label string) bool {
	for _, l := range licenseLabels {
		if l == label {
			return true
		}
	}

	return false
}

type LicenseDiscountTier struct {
	Label   string
	Percent decimal.Decimal
}

type LicenseDiscounts []LicenseDiscountTier

// Percent looks label up by exact match.
func (t LicenseDiscounts) Percent(label string) Lookup {
	for _, tier := range t {
		if tier.Label == label {
			return Lookup{Value: tier.Percent, Outcome: Matched}
		}
	}

	return unmatched()
}
