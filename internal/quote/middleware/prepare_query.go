package middleware

import (
	"net/http"

	"bitbucket.org/crgw/cover-quote/internal/schema"
	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PrepareQuoteQuery binds the GET quote query string the way the API document declares it.
func PrepareQuoteQuery(ctx *gin.Context) {
	var (
		params = &schema.QuoteRequestParams{}
		query  = ctx.Request.URL.Query()
	)

	bindings := []struct {
		name string
		dest any
	}{
		{name: "durationAmount", dest: &params.DurationAmount},
		{name: "durationUnit", dest: &params.DurationUnit},
		{name: "applicantAge", dest: &params.ApplicantAge},
		{name: "licenseHeldLabel", dest: &params.LicenseHeldLabel},
	}

	for _, binding := range bindings {
		err := runtime.BindQueryParameter("form", true, true, binding.name, query, binding.dest)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Failed to bind request params", err)
			return
		}
	}

	ctx.Set(ParamsKey, params)
}
