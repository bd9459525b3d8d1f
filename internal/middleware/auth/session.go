package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/hdcasedi/competenceo/internal/service"
	"github.com/hdcasedi/competenceo/internal/tokens"
)

// Accepted session cookie names. The secure-prefixed name is what a TLS
// deployment sets; the plain name serves non-TLS local runs; the legacy
// name keeps older browsers logged in across the rename.
const (
	SessionCookieSecure = "__Secure-competenceo.session-token"
	SessionCookie       = "competenceo.session-token"
	SessionCookieLegacy = "auth.session-token"
)

const claimsContextKey = "sessionClaims"

var cookieNames = []string{SessionCookieSecure, SessionCookie, SessionCookieLegacy}

func rawSessionToken(c echo.Context) string {
	for _, name := range cookieNames {
		if cookie, err := c.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}

// SessionContext decodes the session cookie into request claims. It is
// the true authority behind the gate: a present-but-forged cookie passes
// the gate and dies here, leaving the request without claims. Decode
// failures are never distinguished from a missing cookie.
func SessionContext(svc *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := rawSessionToken(c); raw != "" {
				if claims, err := svc.Session(raw); err == nil {
					c.Set(claimsContextKey, claims)
				}
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the decoded session claims, or nil when the request
// carries no valid session.
func ClaimsFrom(c echo.Context) *tokens.SessionClaims {
	if v := c.Get(claimsContextKey); v != nil {
		if claims, ok := v.(*tokens.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
