package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"smartfarm-credit/internal/domain/user"
	"smartfarm-credit/internal/infrastructure/token"
)

const claimsKey = "auth.claims"

type TokenParser interface {
	Parse(tokenString string) (*token.Claims, error)
}

type DenyChecker interface {
	IsDenied(ctx context.Context, jti string) (bool, error)
}

var errMissingBearer = errors.New("missing bearer token")

func bearer(h string) (string, error) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
		return "", errMissingBearer
	}
	return strings.TrimSpace(tok), nil
}

// Auth validates the bearer token, checks it against the revocation list and
// stores the claims on the context.
func Auth(tokens TokenParser, deny DenyChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			if _, err := claims.Actor(); err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			denied, err := deny.IsDenied(c.Request().Context(), claims.ID)
			if err != nil {
				zap.L().Error("denylist lookup failed", zap.String("request_id", RequestID(c)), zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "token store unavailable"})
			}
			if denied {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token has been revoked"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorFrom(c).IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
			return next(c)
		}
	}
}

func ClaimsFrom(c echo.Context) (*token.Claims, bool) {
	cl, ok := c.Get(claimsKey).(*token.Claims)
	return cl, ok && cl != nil
}

// ActorFrom returns the zero Actor when the request is unauthenticated.
func ActorFrom(c echo.Context) user.Actor {
	cl, ok := ClaimsFrom(c)
	if !ok {
		return user.Actor{}
	}
	a, _ := cl.Actor()
	return a
}
