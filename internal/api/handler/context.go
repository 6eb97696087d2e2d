package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-system/internal/api/middleware"
	"github.com/inkpost/blog-system/internal/core/domain"
)

// ctxIdentityID extracts the token subject injected by the Auth middleware.
// Its absence means the route was wired without Auth; reject with 401.
func ctxIdentityID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextIdentityID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// pageParam reads ?page=, defaulting to the first page.
func pageParam(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
	}
	return page, nil
}

// resultLabel turns a service error into a metrics label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrEmailAlreadyInUse):
		return "email_in_use"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrPostNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "forbidden"
	default:
		return "error"
	}
}
