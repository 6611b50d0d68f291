package schema

import (
	"fmt"
	"math"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"github.com/shopspring/decimal"
)

type QuoteRequestParams struct {
	DurationAmount   float64 `json:"durationAmount" url:"durationAmount"`
	DurationUnit     string  `json:"durationUnit" url:"durationUnit"`
	ApplicantAge     int     `json:"applicantAge" url:"applicantAge"`
	LicenseHeldLabel string  `json:"licenseHeldLabel" url:"licenseHeldLabel"`
}

func (p QuoteRequestParams) PricingRequest() (pricing.Request, error) {
	unit, err := pricing.ParseDurationUnit(p.DurationUnit)
	if err != nil {
		return pricing.Request{}, err
	}

	if math.IsNaN(p.DurationAmount) || math.IsInf(p.DurationAmount, 0) {
		return pricing.Request{}, fmt.Errorf("%w: %v", pricing.ErrInvalidAmount, p.DurationAmount)
	}

	return pricing.Request{
		Amount:      decimal.NewFromFloat(p.DurationAmount),
		Unit:        unit,
		Age:         p.ApplicantAge,
		LicenseHeld: p.LicenseHeldLabel,
	}, nil
}

type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type QuoteResponse struct {
	QuoteId                string       `json:"quoteId"`
	BasePrice              RoundedFloat `json:"basePrice"`
	AgeDiscountAmount      RoundedFloat `json:"ageDiscountAmount"`
	PriceAfterAge          RoundedFloat `json:"priceAfterAge"`
	LicenseDiscountPercent float64      `json:"licenseDiscountPercent"`
	LicenseDiscountAmount  RoundedFloat `json:"licenseDiscountAmount"`
	Total                  RoundedFloat `json:"total"`
	Warnings               []Warning    `json:"warnings"`
}

func NewQuoteResponse(quoteId string, result pricing.Result) QuoteResponse {
	rounded := result.Rounded()

	warnings := []Warning{}
	for _, w := range result.Warnings() {
		warnings = append(warnings, Warning{Code: w.Code, Message: w.Message})
	}

	return QuoteResponse{
		QuoteId:                quoteId,
		BasePrice:              NewRoundedFloat(rounded.BasePrice),
		AgeDiscountAmount:      NewRoundedFloat(rounded.AgeDiscount),
		PriceAfterAge:          NewRoundedFloat(rounded.PriceAfterAge),
		LicenseDiscountPercent: rounded.LicensePercent.InexactFloat64(),
		LicenseDiscountAmount:  NewRoundedFloat(rounded.LicenseDiscount),
		Total:                  NewRoundedFloat(rounded.Total),
		Warnings:               warnings,
	}
}
