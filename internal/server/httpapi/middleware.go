package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// sessionGate is the session validator: it verifies the bearer token on
// every protected request and exposes the embedded user id to handlers.
// It is applied exactly once, on the protected route group, so no handler
// behind it can run without an authenticated identity.
func (s *Server) sessionGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthHeaderName)
		if header == "" {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthScheme) {
			return fail(c, http.StatusUnauthorized, "Invalid authorization header")
		}

		userID, err := auth.GetUserIDFromToken(parts[1], s.jwtSecret)
		if err != nil {
			return fail(c, http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// userID returns the authenticated user id placed into the context by
// sessionGate.
func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
