package web

import (
	"errors"
	"net/http"

	"bitbucket.org/crgw/cover-quote/internal/tools/responding"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/gin-gonic/gin"
)

// OpenapiValidator rejects requests that do not match the document. Paths the
// document does not describe (pprof, the document itself) pass through.
func OpenapiValidator(spec []byte) gin.HandlerFunc {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		panic(err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		panic(err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if isRouteError(err, routers.ErrPathNotFound) {
			return
		}

		if isRouteError(err, routers.ErrMethodNotAllowed) {
			responding.HandleError(c, http.StatusMethodNotAllowed, "Method not allowed", err)
			return
		}

		if err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Request does not match API schema", err)
			return
		}

		err = openapi3filter.ValidateRequest(c.Request.Context(), &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		})
		if err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Request does not match API schema", err)
			return
		}
	}
}

// Routers return fresh RouteError values carrying the sentinel's reason.
func isRouteError(err error, sentinel error) bool {
	var routeErr *routers.RouteError
	if errors.As(err, &routeErr) {
		return routeErr.Reason == sentinel.Error()
	}

	return errors.Is(err, sentinel)
}
