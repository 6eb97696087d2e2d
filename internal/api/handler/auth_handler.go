package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/ports"
	"github.com/inkpost/blog-system/internal/infrastructure/metrics"
)

type AuthHandler struct {
	identity ports.IdentityService
	tokens   ports.TokenIssuer
}

func NewAuthHandler(identity ports.IdentityService, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  *identityResponse `json:"user"`
}

// Register creates an account and starts its session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.identity.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	metrics.AuthAttemptsTotal.WithLabelValues("register", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusCreated, *identity)
}

// Login authenticates against the identity directory and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("login", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusOK, *identity)
}

// Logout ends the active session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.identity.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity of the active session.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  identityResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := h.identity.CurrentIdentity()
	if !ok {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, toIdentityResponse(*identity))
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, identity domain.Identity) error {
	token, err := h.tokens.Issue(identity)
	if err != nil {
		return err
	}
	user := toIdentityResponse(identity)
	return c.JSON(status, authResponse{Token: token, User: &user})
}
