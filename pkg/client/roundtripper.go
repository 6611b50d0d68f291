package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type OutgoingLoggerRoundTripper struct {
	destination string
	logger      *zerolog.Logger
	next        http.RoundTripper
}

// NewOutgoingLoggerRoundTripper logs every request sent through next, http.DefaultTransport when nil.
func NewOutgoingLoggerRoundTripper(logger *zerolog.Logger, destination string, next http.RoundTripper) *OutgoingLoggerRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &OutgoingLoggerRoundTripper{
		destination: destination,
		logger:      logger,
		next:        next,
	}
}

func (r OutgoingLoggerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	res, err := r.next.RoundTrip(req)

	message := r.logger.Info()
	if err != nil {
		message = r.logger.Error().Err(err)
	}

	code := 0
	if res != nil {
		code = res.StatusCode
	}

	message.
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("destination", r.destination).
		Str("userAgent", req.UserAgent()).
		Int("code", code).
		Float64("duration", time.Since(startTime).Seconds()).
		Msg("")

	return res, err
}
