package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("should refuse pointer templates", func(t *testing.T) {
		assert.Panics(t, func() { PrepareParams(&schema.QuoteRequestParams{}) })
	})

	t.Run("should bind a fresh pointer per request", func(t *testing.T) {
		handler := PrepareParams(schema.QuoteRequestParams{})

		bind := func(body string) any {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)
			ctx.Request = httptest.NewRequest(http.MethodPost, "/default/quote", strings.NewReader(body))
			ctx.Request.Header.Set("Content-Type", "application/json")

			handler(ctx)

			return ctx.MustGet(ParamsKey)
		}

		first := bind(`{"durationAmount":2,"durationUnit":"days","applicantAge":30,"licenseHeldLabel":"10+ Years"}`)
		second := bind(`{"durationAmount":3,"durationUnit":"weeks","applicantAge":40,"licenseHeldLabel":"1-2 Years"}`)

		require.IsType(t, &schema.QuoteRequestParams{}, first)
		assert.Equal(t, 2.0, first.(*schema.QuoteRequestParams).DurationAmount)
		assert.Equal(t, "weeks", second.(*schema.QuoteRequestParams).DurationUnit)
	})
}

func TestTapLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	out := &bytes.Buffer{}
	log := zerolog.New(out)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Params = gin.Params{{Key: "profile", Value: "brand-x"}}
	ctx.Set("logger", &log)

	TapLogger(ctx)
	ctx.MustGet("logger").(*zerolog.Logger).Info().Msg("tapped")

	assert.Contains(t, out.String(), `"profile":"brand-x"`)
	assert.Contains(t, out.String(), `"operationId":"`)
}

func TestRespondInvalidSettings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	respond := func(err error) (*httptest.ResponseRecorder, responding.ErrorResponse) {
		recorder := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(recorder)

		RespondInvalidSettings(ctx, "Invalid settings", err)

		body := responding.ErrorResponse{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

		return recorder, body
	}

	t.Run("should list configuration issues", func(t *testing.T) {
		err := fmt.Errorf("load: %w", &pricing.ConfigurationError{Issues: []pricing.Issue{
			{Severity: pricing.SeverityError, Code: pricing.IssueNegativeRate, Message: "hour rate is negative"},
		}})

		recorder, body := respond(err)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		require.Len(t, body.Error.Issues, 1)
		assert.Equal(t, pricing.IssueNegativeRate, body.Error.Issues[0].Code)
	})

	t.Run("should fall back to a plain error without issues", func(t *testing.T) {
		recorder, body := respond(errors.New("settings are unusable"))

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Equal(t, "Invalid settings", body.Error.Message)
		assert.Equal(t, "settings are unusable", body.Error.Details)
		assert.Empty(t, body.Error.Issues)
	})
}
