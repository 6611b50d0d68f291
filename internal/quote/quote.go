package quote

import (
	"errors"
	"net/http"
	"time"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	quoteMiddleware "bitbucket.org/crgw/cover-quote/internal/quote/middleware"
	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/settings"
	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"bitbucket.org/crgw/cover-quote/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Options struct {
	// DefaultPolicy applies to settings documents without an unmatchedPolicy.
	DefaultPolicy pricing.UnmatchedPolicy
	SlowThreshold time.Duration
}

func RegisterRoutes(
	router *gin.Engine,
	provider settings.Provider,
	options Options,
) {
	if options.DefaultPolicy == "" {
		options.DefaultPolicy = pricing.UnmatchedZero
	}

	group := router.Group(
		"/:profile",
		quoteMiddleware.TapLogger,
	)

	prepareProfile := quoteMiddleware.PrepareProfile(provider, options.DefaultPolicy)

	group.POST("/quote",
		prepareProfile,
		quoteMiddleware.PrepareParams(schema.QuoteRequestParams{}),
		quoteHandler(options),
	)

	group.GET("/quote",
		prepareProfile,
		quoteMiddleware.PrepareQuoteQuery,
		quoteHandler(options),
	)

	group.GET("/settings",
		prepareProfile,
		func(ctx *gin.Context) {
			document := ctx.MustGet(quoteMiddleware.SettingsKey).(schema.Settings)
			cfg := ctx.MustGet(quoteMiddleware.ConfigKey).(pricing.Config)

			ctx.JSON(http.StatusOK, schema.SettingsResponse{
				Profile:  ctx.Params.ByName("profile"),
				Settings: document,
				Issues:   schema.NewIssues(cfg.Issues()),
			})
		},
	)

	group.PUT("/settings",
		quoteMiddleware.PrepareParams(schema.Settings{}),
		func(ctx *gin.Context) {
			document, ok := ctx.MustGet(quoteMiddleware.ParamsKey).(*schema.Settings)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			cfg, ok := validatedConfig(ctx, *document, options.DefaultPolicy)
			if !ok {
				return
			}

			if provider == nil {
				responding.HandleError(ctx, http.StatusInternalServerError, "Settings storage is not configured", nil)
				return
			}

			profile := ctx.Params.ByName("profile")
			if err := provider.Save(ctx.Request.Context(), profile, *document); err != nil {
				responding.HandleError(ctx, http.StatusInternalServerError, "Failed saving settings", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.SettingsResponse{
				Profile:  profile,
				Settings: *document,
				Issues:   schema.NewIssues(cfg.Issues()),
			})
		},
	)

	group.POST("/settings/preview",
		quoteMiddleware.PrepareParams(schema.PreviewRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(quoteMiddleware.ParamsKey).(*schema.PreviewRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			cfg, ok := validatedConfig(ctx, params.Settings, options.DefaultPolicy)
			if !ok {
				return
			}

			respondQuote(ctx, cfg, params.Request, options)
		},
	)
}

func quoteHandler(options Options) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cfg := ctx.MustGet(quoteMiddleware.ConfigKey).(pricing.Config)

		params, ok := ctx.MustGet(quoteMiddleware.ParamsKey).(*schema.QuoteRequestParams)
		if !ok {
			responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
			return
		}

		respondQuote(ctx, cfg, *params, options)
	}
}

// validatedConfig converts a submitted document and aborts with 422 when it has error-severity issues.
func validatedConfig(ctx *gin.Context, document schema.Settings, defaultPolicy pricing.UnmatchedPolicy) (pricing.Config, bool) {
	cfg, err := document.PricingConfig(defaultPolicy)
	if err != nil {
		responding.HandleError(ctx, http.StatusUnprocessableEntity, "Invalid settings", err)
		return pricing.Config{}, false
	}

	if err := cfg.Validate(); err != nil {
		quoteMiddleware.RespondInvalidSettings(ctx, "Invalid settings", err)
		return pricing.Config{}, false
	}

	return cfg, true
}

func respondQuote(ctx *gin.Context, cfg pricing.Config, params schema.QuoteRequestParams, options Options) {
	logger := ctx.MustGet("logger").(*zerolog.Logger)

	slowLog := slowlog.CreateLogger(logger, options.SlowThreshold)
	slowLog.Start("quote:calculate")

	result, err := calculate(cfg, params)
	slowLog.Stop("quote:calculate")

	if err != nil {
		status, message := errorStatus(err)
		responding.HandleError(ctx, status, message, err)
		return
	}

	response := schema.NewQuoteResponse(uuid.New().String(), result)

	logger.Debug().
		Str("quoteId", response.QuoteId).
		Stringer("ageOutcome", result.AgeOutcome).
		Stringer("licenseOutcome", result.LicenseOutcome).
		Msg("quote calculated")

	for _, warning := range response.Warnings {
		logger.Warn().
			Str("label", "pricing").
			Str("code", warning.Code).
			Str("quoteId", response.QuoteId).
			Msg(warning.Message)
	}

	ctx.JSON(http.StatusOK, response)
}

func calculate(cfg pricing.Config, params schema.QuoteRequestParams) (pricing.Result, error) {
	request, err := params.PricingRequest()
	if err != nil {
		return pricing.Result{}, err
	}

	return pricing.Calculate(cfg, request)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, pricing.ErrInvalidAmount), errors.Is(err, pricing.ErrInvalidUnit):
		return http.StatusBadRequest, "Invalid quote request"
	case errors.Is(err, pricing.ErrUnmatchedAgeRange), errors.Is(err, pricing.ErrUnmatchedLicenseLabel):
		return http.StatusUnprocessableEntity, "No discount applies to the quote request"
	case errors.Is(err, pricing.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity, "Invalid settings"
	default:
		return http.StatusInternalServerError, "Failed calculating quote"
	}
}
