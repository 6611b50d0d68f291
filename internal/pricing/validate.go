package pricing

import (
	"fmt"
	"sort"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

const (
	IssueNegativeRate         = "NEGATIVE_RATE"
	IssueInvertedAgeRange     = "INVERTED_AGE_RANGE"
	IssueNegativeMultiplier   = "NEGATIVE_MULTIPLIER"
	IssueOverlappingAgeRanges = "OVERLAPPING_AGE_RANGES"
	IssueAgeRangeGap          = "AGE_RANGE_GAP"
	IssueUnsortedAgeRanges    = "UNSORTED_AGE_RANGES"
	IssueNoAgeRanges          = "NO_AGE_RANGES"
	IssueUnknownLicenseLabel  = "UNKNOWN_LICENSE_LABEL"
	IssueDuplicateLicense     = "DUPLICATE_LICENSE_LABEL"
	IssueMissingLicenseLabel  = "MISSING_LICENSE_LABEL"
	IssuePercentOutOfRange    = "PERCENT_OUT_OF_RANGE"
	IssueInvalidPolicy        = "INVALID_UNMATCHED_POLICY"
)

type Issue struct {
	Severity Severity
	Code     string
	Field    string
	Message  string
}

// ConfigurationError is returned by Config.Validate and wraps ErrInvalidConfiguration.
type ConfigurationError struct {
	Issues []Issue
}

func (e *ConfigurationError) Error() string {
	messages := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		messages[i] = issue.Field + ": " + issue.Message
	}

	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, strings.Join(messages, "; "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Validate fails when Issues reports at least one error-severity issue.
func (c Config) Validate() error {
	var errs []Issue
	for _, issue := range c.Issues() {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return &ConfigurationError{Issues: errs}
}

// Issues checks the configuration without rejecting it. Gaps between age ranges and
// partial license tables only produce warnings since Calculate handles them through
// the unmatched policy.
func (c Config) Issues() []Issue {
	issues := []Issue{}
	issues = append(issues, c.scheduleIssues()...)
	issues = append(issues, c.ageIssues()...)
	issues = append(issues, c.licenseIssues()...)

	switch c.UnmatchedPolicy {
	case "", UnmatchedZero, UnmatchedReject:
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     IssueInvalidPolicy,
			Field:    "unmatchedPolicy",
			Message:  fmt.Sprintf("unknown policy %q", c.UnmatchedPolicy),
		})
	}

	return issues
}

func (c Config) scheduleIssues() []Issue {
	var issues []Issue
	for _, rate := range c.Schedule.rates() {
		if rate.value.IsNegative() {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssueNegativeRate,
				Field:    rate.name,
				Message:  fmt.Sprintf("rate must not be negative, got %s", rate.value),
			})
		}
	}

	return issues
}

func (c Config) ageIssues() []Issue {
	if len(c.AgeDiscounts) == 0 {
		return []Issue{{
			Severity: SeverityWarning,
			Code:     IssueNoAgeRanges,
			Field:    "ageDiscountRanges",
			Message:  "no age ranges configured, every quote gets no age discount",
		}}
	}

	var issues []Issue
	for i, r := range c.AgeDiscounts {
		field := fmt.Sprintf("ageDiscountRanges[%d]", i)

		if r.MinAge > r.MaxAge {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssueInvertedAgeRange,
				Field:    field,
				Message:  fmt.Sprintf("minAge %d is above maxAge %d", r.MinAge, r.MaxAge),
			})
		}

		if r.Multiplier.IsNegative() {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssueNegativeMultiplier,
				Field:    field,
				Message:  fmt.Sprintf("multiplier must not be negative, got %s", r.Multiplier),
			})
		}
	}

	indexes := make([]int, len(c.AgeDiscounts))
	for i := range indexes {
		indexes[i] = i
	}

	sort.SliceStable(indexes, func(a, b int) bool {
		return c.AgeDiscounts[indexes[a]].MinAge < c.AgeDiscounts[indexes[b]].MinAge
	})

	if !sort.IntsAreSorted(indexes) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Code:     IssueUnsortedAgeRanges,
			Field:    "ageDiscountRanges",
			Message:  "ranges are not ordered by minAge, ages above 80 use the last configured range",
		})
	}

	// the widest range seen so far, ranges nested inside it are overlaps too
	coverIndex := indexes[0]
	for _, currIndex := range indexes[1:] {
		cover, curr := c.AgeDiscounts[coverIndex], c.AgeDiscounts[currIndex]
		field := fmt.Sprintf("ageDiscountRanges[%d]", currIndex)

		switch {
		case curr.MinAge <= cover.MaxAge:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssueOverlappingAgeRanges,
				Field:    field,
				Message:  fmt.Sprintf("%d-%d overlaps ageDiscountRanges[%d] %d-%d", curr.MinAge, curr.MaxAge, coverIndex, cover.MinAge, cover.MaxAge),
			})
		case curr.MinAge > cover.MaxAge+1:
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     IssueAgeRangeGap,
				Field:    field,
				Message:  fmt.Sprintf("ages %d-%d are not covered by any range", cover.MaxAge+1, curr.MinAge-1),
			})
		}

		if curr.MaxAge > cover.MaxAge {
			coverIndex = currIndex
		}
	}

	return issues
}

func (c Config) licenseIssues() []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(c.LicenseDiscounts))

	for i, tier := range c.LicenseDiscounts {
		field := fmt.Sprintf("licenseDiscounts[%d]", i)

		if !IsLicenseLabel(tier.Label) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssueUnknownLicenseLabel,
				Field:    field,
				Message:  fmt.Sprintf("unknown label %q", tier.Label),
			})
		}

		if seen[tier.Label] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssueDuplicateLicense,
				Field:    field,
				Message:  fmt.Sprintf("label %q configured more than once", tier.Label),
			})
		}
		seen[tier.Label] = true

		if tier.Percent.IsNegative() || tier.Percent.GreaterThan(hundred) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     IssuePercentOutOfRange,
				Field:    field,
				Message:  fmt.Sprintf("discount must be between 0 and 100, got %s", tier.Percent),
			})
		}
	}

	for _, label := range LicenseLabels() {
		if !seen[label] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     IssueMissingLicenseLabel,
				Field:    "licenseDiscounts",
				Message:  fmt.Sprintf("no discount configured for %q", label),
			})
		}
	}

	return issues
}

