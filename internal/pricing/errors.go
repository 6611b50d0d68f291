package pricing

import "errors"

var (
	ErrInvalidAmount         = errors.New("invalid duration amount")
	ErrInvalidUnit           = errors.New("invalid duration unit")
	ErrUnmatchedAgeRange     = errors.New("no age discount range covers applicant age")
	ErrUnmatchedLicenseLabel = errors.New("no license discount configured for label")
	ErrInvalidPolicy         = errors.New("invalid unmatched policy")
	ErrInvalidConfiguration  = errors.New("invalid pricing configuration")
)
