package web

import (
	"net/http"
	"os"
	"time"

	"bitbucket.org/crgw/cover-quote/api"
	"bitbucket.org/crgw/cover-quote/internal/quote"
	"bitbucket.org/crgw/cover-quote/internal/settings"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Options struct {
	Quote      quote.Options
	Validation bool
}

func SetupRouter(log *zerolog.Logger, provider settings.Provider, options Options) *gin.Engine {
	startTime := time.Now()

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery)

	if options.Validation {
		router.Use(OpenapiValidator(api.Spec))
	}

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.Spec)
	})

	pprof.Register(router)

	quote.RegisterRoutes(router, provider, options.Quote)

	return router
}
