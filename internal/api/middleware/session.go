package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-system/internal/core/ports"
)

// Session only lets a request through when the token subject set by Auth is
// the identity currently logged in. A token outlives the session it was
// issued for; after logout, or a login by someone else, it stops working.
func Session(identity ports.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, _ := c.Get(ContextIdentityID).(string)
			current, ok := identity.CurrentIdentity()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}
			if sub == "" || current.ID != sub {
				return echo.NewHTTPError(http.StatusUnauthorized, "token does not match the active session")
			}
			return next(c)
		}
	}
}
