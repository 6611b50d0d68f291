package middleware

import (
	"errors"
	"net/http"

	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/settings"
	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"bitbucket.org/crgw/cover-quote/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	SettingsKey string = "settings"
	ConfigKey   string = "config"
)

// PrepareProfile loads the profile's settings once per request and stores both the
// document and its pricing snapshot.
func PrepareProfile(provider settings.Provider, defaultPolicy pricing.UnmatchedPolicy) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		profile := ctx.Params.ByName("profile")
		logger := ctx.MustGet("logger").(*zerolog.Logger)

		slowLog := slowlog.CreateLogger(logger, 0)
		slowLog.Start("settings:load")

		document, err := settings.Resolve(ctx.Request.Context(), provider, profile)
		slowLog.Stop("settings:load")

		if errors.Is(err, settings.ErrNotFound) {
			responding.HandleError(ctx, http.StatusNotFound, "Failed to find settings profile", err)
			return
		}

		if err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed loading settings", err)
			return
		}

		cfg, err := document.PricingConfig(defaultPolicy)
		if err != nil {
			responding.HandleError(ctx, http.StatusUnprocessableEntity, "Stored settings are invalid", err)
			return
		}

		if err := cfg.Validate(); err != nil {
			RespondInvalidSettings(ctx, "Stored settings are invalid", err)
			return
		}

		ctx.Set(SettingsKey, document)
		ctx.Set(ConfigKey, cfg)
	}
}

// RespondInvalidSettings aborts with 422, listing the issues when err carries them.
func RespondInvalidSettings(ctx *gin.Context, message string, err error) {
	var configErr *pricing.ConfigurationError
	if errors.As(err, &configErr) {
		responding.HandleIssues(ctx, http.StatusUnprocessableEntity, message, err, schema.NewIssues(configErr.Issues))
		return
	}

	responding.HandleError(ctx, http.StatusUnprocessableEntity, message, err)
}
