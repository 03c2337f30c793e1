package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"quickthumb/internal/errors"
	"quickthumb/internal/model"
	"quickthumb/internal/service"
)

// SessionCookieName is the cookie carrying the bearer session token.
const SessionCookieName = "session_token"

const userContextKey = "current_user"

// ExtractToken pulls the session token from the request: cookie first,
// then Authorization: Bearer. Empty string means no credential at all.
func ExtractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireSession guards a route group: it resolves the request's session
// token to a user and stores it in the request context. Resolution is
// read-only.
func RequireSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			user, err := authService.ResolveSession(c.Request().Context(), token)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by RequireSession, or nil on
// unguarded routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
