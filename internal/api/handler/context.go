package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware. Routes
// behind Auth must always yield a caller; an empty one means the middleware
// did not run and the request cannot be trusted.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Caller{ID: id, Role: role}, nil
}

// ctxCallerOrAnon is for routes behind OptionalAuth: a zero Caller represents
// an anonymous request.
func ctxCallerOrAnon(c echo.Context) ports.Caller {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	return ports.Caller{ID: id, Role: role}
}
