package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TraceLog(c *gin.Context) {
	// Finish all others and then write trace log
	c.Next()

	logger := c.MustGet("logger").(*zerolog.Logger)
	startTime := c.MustGet("requestStartTime").(time.Time)

	event := logger.Info()
	if c.Writer.Status() >= http.StatusInternalServerError {
		event = logger.Error()
	}

	event.
		Str("label", "trace").
		Str("method", c.Request.Method).
		Str("url", c.Request.URL.Path).
		Str("route", c.FullPath()).
		Int("code", c.Writer.Status()).
		Float64("duration", CurrentTimeFunc().Sub(startTime).Seconds()).
		Msg("")
}
