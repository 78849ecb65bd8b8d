package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const corsAllowHeaders = "authorization, x-client-info, apikey, content-type, idempotency-key"

// CORS stamps the permissive CORS headers on every response and answers
// preflight OPTIONS requests itself, whether or not an Origin was sent.
// Register it with e.Pre so unrouted OPTIONS requests are covered too.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
			h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, OPTIONS")

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
