package middleware

import (
	"net/http"
	"strings"

	"shelf_life_app_go/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CSRFHeader is the header htmx sends the token in.
const CSRFHeader = "X-CSRF-Token"

// CSRF protects the form endpoints. The stateless JSON API is skipped.
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	return echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "header:" + CSRFHeader + ",form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.SecureCookies,
		CookieSameSite: http.SameSiteLaxMode,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/healthz"
		},
	})
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	if tokenStr, ok := c.Get("csrf").(string); ok {
		return tokenStr
	}
	return ""
}
