package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

// Context keys set by the auth middleware.
const (
	ActorKey        = "actor"
	TokenIDKey      = "token_id"
	TokenExpiresKey = "token_expires"
)

// Auth validates the bearer JWT, rejects revoked tokens, and injects the
// acting principal into the request context. Requests without a token fail
// with 401.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return authMiddleware(jwtSecret, revoker, true)
}

// OptionalAuth resolves the actor when a token is present but lets anonymous
// requests through with a zero-value actor. A token that is present and
// invalid still fails with 401.
func OptionalAuth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return authMiddleware(jwtSecret, revoker, false)
}

func authMiddleware(jwtSecret string, revoker ports.TokenRevoker, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				}
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			tokenID, _ := claims["jti"].(string)
			if tokenID != "" {
				revoked, err := revoker.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			userID, _ := claims["user_id"].(string)
			username, _ := claims["username"].(string)
			admin, _ := claims["admin"].(bool)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}

			c.Set(ActorKey, domain.Actor{UserID: userID, Username: username, Admin: admin})
			c.Set(TokenIDKey, tokenID)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(TokenExpiresKey, exp.Time)
			} else {
				c.Set(TokenExpiresKey, time.Time{})
			}

			return next(c)
		}
	}
}
