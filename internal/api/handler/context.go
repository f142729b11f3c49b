package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-api/internal/api/middleware"
	"github.com/platefull/recipe-api/internal/core/domain"
)

// ctxActor extracts the acting principal injected by the auth middleware.
// A zero-value actor means the request is anonymous; services decide whether
// that is acceptable for the operation.
func ctxActor(c echo.Context) domain.Actor {
	actor, _ := c.Get(middleware.ActorKey).(domain.Actor)
	return actor
}

// ctxToken extracts the token ID and expiry stashed by the auth middleware,
// used by logout to revoke the presented token.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get(middleware.TokenIDKey).(string)
	expiresAt, _ = c.Get(middleware.TokenExpiresKey).(time.Time)
	return tokenID, expiresAt
}
