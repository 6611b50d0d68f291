package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TapLogger(c *gin.Context) {
	profile := c.Params.ByName("profile")
	logger := c.MustGet("logger").(*zerolog.Logger)

	requestLogger := logger.
		With().
		Str("profile", profile).
		Str("operationId", uuid.New().String()).
		Logger()

	c.Set("logger", &requestLogger)
}
