package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoplane/commerce-api/internal/api/middleware"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

// ctxActor extracts the identity injected by the guard and fast-fails with
// 401 if it is absent. Absence means the route was registered without the
// guard, which is a wiring bug, not a client error, but the safe response
// is still to deny.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
