// Package bridgeserver is the HTTP surface of the order bridge: the storefront
// webhook, the dry-run transcoder, artifact lookup and operational endpoints.
package bridgeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine. Middleware must
// already be registered on router.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the RelayAPI part of the API
	RelayAPI RelayAPI
	// Routes for the SystemAPI part of the API
	SystemAPI SystemAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ReceiveOrderHook",
			http.MethodPost,
			"/api/hook",
			handleFunctions.RelayAPI.ReceiveOrderHook,
		},
		{
			"TranscodeOrder",
			http.MethodPost,
			"/api/transcode",
			handleFunctions.RelayAPI.TranscodeOrder,
		},
		{
			"GetArtifact",
			http.MethodGet,
			"/api/artifacts/:orderId",
			handleFunctions.RelayAPI.GetArtifact,
		},
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			handleFunctions.SystemAPI.Healthz,
		},
		{
			"Metrics",
			http.MethodGet,
			"/metrics",
			handleFunctions.SystemAPI.Metrics,
		},
	}
}
