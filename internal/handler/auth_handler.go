package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickthumb/internal/errors"
	"quickthumb/internal/middleware"
	"quickthumb/internal/service"
)

// AuthHandler handles session exchange, identity and logout endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SessionDataResponse is returned by the session exchange; the token is
// duplicated in the body for non-cookie clients.
type SessionDataResponse struct {
	User         interface{} `json:"user"`
	SessionToken string      `json:"session_token"`
}

// SessionData godoc
// @Summary Exchange an external session id for a user session
// @Tags auth
// @Produce json
// @Param X-Session-ID header string true "External session id"
// @Success 200 {object} SessionDataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session-data [get]
func (h *AuthHandler) SessionData(c echo.Context) error {
	sessionID := c.Request().Header.Get("X-Session-ID")
	if sessionID == "" {
		httpErr := errors.MapErrorToHTTP(errors.ErrMissingSessionID)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	user, session, err := h.authService.ExchangeSession(c.Request().Context(), sessionID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(service.SessionDuration.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, SessionDataResponse{
		User:         user,
		SessionToken: session.Token,
	})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// Logout godoc
// @Summary Delete the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		// best effort, logout always succeeds
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}
