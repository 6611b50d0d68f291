package responding

import (
	"bitbucket.org/crgw/cover-quote/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ErrorDetails struct {
	Message       string         `json:"message"`
	Details       string         `json:"details,omitempty"`
	CorrelationId string         `json:"correlationId,omitempty"`
	Issues        []schema.Issue `json:"issues,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// HandleError logs err on the request logger and aborts with a JSON error body.
func HandleError(ctx *gin.Context, status int, message string, err error) {
	respond(ctx, status, message, err, nil)
}

// HandleIssues aborts with the configuration issues that made the request unprocessable.
func HandleIssues(ctx *gin.Context, status int, message string, err error, issues []schema.Issue) {
	respond(ctx, status, message, err, issues)
}

func respond(ctx *gin.Context, status int, message string, err error, issues []schema.Issue) {
	body := ErrorDetails{
		Message:       message,
		CorrelationId: ctx.GetString("correlationId"),
		Issues:        issues,
	}

	if err != nil {
		body.Details = err.Error()
	}

	if logger, ok := ctx.Get("logger"); ok {
		event := logger.(*zerolog.Logger).Warn()
		if status >= 500 {
			event = logger.(*zerolog.Logger).Error()
		}

		event.
			Err(err).
			Int("code", status).
			Msg(message)
	}

	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: body})
}
