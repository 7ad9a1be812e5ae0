package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shoplane/commerce-api/internal/core/ports"
	"github.com/shoplane/commerce-api/internal/core/service"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*service.Claims, error)
}

const actorContextKey = "actor"

// SetActor stores the verified identity on the request context.
func SetActor(c echo.Context, actor ports.Actor) {
	c.Set(actorContextKey, actor)
}

// ActorFrom retrieves the identity injected by Guard.
func ActorFrom(c echo.Context) (ports.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(ports.Actor)
	return actor, ok && actor.ID != ""
}

// Guard authenticates the bearer token, reloads the identity from the
// store, and enforces the route's allowed roles. The reload means a token
// for a deleted account is rejected even while the token itself is still
// valid. An empty role list denies everyone.
func Guard(verifier TokenVerifier, users ports.UserRepository, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			SetActor(c, ports.Actor{ID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
