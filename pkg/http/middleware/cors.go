package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// The API surface is read endpoints plus two POST operations (analyze,
// ingest trigger), so the allowed method set is fixed rather than
// configurable.
var (
	corsMethods = strings.Join([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodOptions,
	}, ", ")
	corsHeaders = strings.Join([]string{
		echo.HeaderOrigin,
		echo.HeaderContentType,
		echo.HeaderAccept,
	}, ", ")
)

// CORS lets browser dashboards on other origins call the API. With no
// origins listed every origin is allowed; otherwise requests from
// unlisted origins pass through without CORS headers.
func CORS(origins ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			switch origin := c.Request().Header.Get("Origin"); {
			case len(origins) == 0:
				h.Set("Access-Control-Allow-Origin", "*")
			case originAllowed(origin, origins):
				h.Set("Access-Control-Allow-Origin", origin)
			default:
				return next(c)
			}
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

func originAllowed(origin string, origins []string) bool {
	for _, o := range origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
