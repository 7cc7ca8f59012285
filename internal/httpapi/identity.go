package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/producthouse/producthouse/internal/domain"
)

// Identity headers set by the external identity collaborator. They are
// trusted verbatim; this service performs no authentication of its own.
const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
)

const userContextKey = "producthouse.user"

// identityMiddleware resolves the acting user from the identity headers.
// Requests without them proceed as anonymous; the service layer rejects
// mutating operations for unresolved users.
func identityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(userContextKey, domain.User{
			ID:   c.Request().Header.Get(headerUserID),
			Name: c.Request().Header.Get(headerUserName),
		})
		return next(c)
	}
}

func currentUser(c echo.Context) domain.User {
	if u, ok := c.Get(userContextKey).(domain.User); ok {
		return u
	}
	return domain.User{}
}
