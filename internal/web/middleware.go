package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const correlationIdHeader = "x-correlation-id"

// CurrentTimeFunc Current time. Can be mocked for testing.
var CurrentTimeFunc = time.Now

func StartRequest(c *gin.Context) {
	c.Set("requestStartTime", CurrentTimeFunc())
}

// CorrelationId reuses the caller's correlation id or issues a new one and echoes it back.
func CorrelationId(c *gin.Context) {
	correlationId := c.GetHeader(correlationIdHeader)
	if correlationId == "" {
		correlationId = uuid.New().String()
	}

	c.Set("correlationId", correlationId)
	c.Header(correlationIdHeader, correlationId)
}

func RegisterLogger(logger *zerolog.Logger) func(c *gin.Context) {
	return func(c *gin.Context) {
		correlationId := c.MustGet("correlationId").(string)

		requestLogger := logger.
			With().
			Str("correlationId", correlationId).
			Logger()

		c.Set("logger", &requestLogger)
	}
}
