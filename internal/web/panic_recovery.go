package web

import (
	"fmt"
	"net/http"

	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func PanicRecovery(c *gin.Context) {
	gin.CustomRecoveryWithWriter(&recoveryWriter{
		logger: c.MustGet("logger").(*zerolog.Logger),
	}, func(c *gin.Context, err any) {
		message, ok := err.(string)
		if !ok {
			message = "Unknown error, panic recovered"
		}

		var cause error
		if e, ok := err.(error); ok {
			cause = e
		} else {
			cause = fmt.Errorf("%v", err)
		}

		responding.HandleError(c, http.StatusInternalServerError, message, cause)
	})(c)
}

type recoveryWriter struct {
	logger *zerolog.Logger
}

func (r *recoveryWriter) Write(p []byte) (n int, err error) {
	str := string(p)
	r.
		logger.
		Error().
		Str("label", "panic").
		Msg(str)

	return len(str), nil
}
