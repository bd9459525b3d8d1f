package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// Paths reachable without a session: the auth API, the login and signup
// pages, health probes and static assets.
var openPrefixes = []string{
	"/api/auth",
	"/login",
	"/signup",
	"/health",
	"/favicon",
	"/assets",
	"/static",
}

func isOpenPath(path string) bool {
	for _, prefix := range openPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Gate is the pre-request filter. It only checks that some session cookie
// is present; the cookie's content is validated downstream by
// SessionContext. Unauthenticated requests to protected paths are
// redirected to the login page with the original path preserved.
func Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if isOpenPath(req.URL.Path) {
				return next(c)
			}
			if rawSessionToken(c) != "" {
				return next(c)
			}

			callback := req.URL.Path
			if req.URL.RawQuery != "" {
				callback += "?" + req.URL.RawQuery
			}
			return c.Redirect(http.StatusFound, "/login?callbackUrl="+url.QueryEscape(callback))
		}
	}
}
