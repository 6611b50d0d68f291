// Package quoteservice is the Go client booking flows use to price cover notes.
package quoteservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/pkg/client"
	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

const destination = "cover-quote"

// Wire types of the quote API, exported for callers outside this module.
type (
	QuoteRequest  = schema.QuoteRequestParams
	QuoteResponse = schema.QuoteResponse
	Warning       = schema.Warning
	Issue         = schema.Issue
	RoundedFloat  = schema.RoundedFloat
)

// APIError is returned for every non 200 response.
type APIError struct {
	StatusCode    int
	Message       string
	Details       string
	CorrelationId string
	Issues        []Issue
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("cover-quote responded %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("cover-quote responded %d: %s: %s", e.StatusCode, e.Message, e.Details)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient reads the base URL from CRG_URL_COVER_QUOTE unless overridden by client.WithBaseURL.
func NewClient(logger *zerolog.Logger, optionFuncs ...client.OptionFunc) *Client {
	clientOptions := []client.OptionFunc{client.WithBaseURL(os.Getenv("CRG_URL_COVER_QUOTE"))}
	clientOptions = append(clientOptions, optionFuncs...)

	options := client.NewOptions(clientOptions...)

	return &Client{
		httpClient: &http.Client{
			Timeout:   options.Timeout(),
			Transport: client.NewOutgoingLoggerRoundTripper(logger, destination, nil),
		},
		baseURL:   options.BaseURL(destination, ""),
		userAgent: fmt.Sprintf("cover-quote-client via %s", options.Name()),
	}
}

// Quote prices params against the settings of profile.
func (c *Client) Quote(ctx context.Context, profile string, params QuoteRequest) (*QuoteResponse, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/quote?%s", c.baseURL, url.PathEscape(profile), values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, decodeError(res)
	}

	var response QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}

	return &response, nil
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Message:    http.StatusText(res.StatusCode),
	}

	var body responding.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
		apiErr.Details = body.Error.Details
		apiErr.CorrelationId = body.Error.CorrelationId
		apiErr.Issues = body.Error.Issues
	}

	return apiErr
}
