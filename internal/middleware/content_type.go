package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireJSON rejects requests whose Content-Type does not mention
// application/json with 415 Unsupported Media Type.
func RequireJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
			return c.NoContent(http.StatusUnsupportedMediaType)
		}
		return next(c)
	}
}
