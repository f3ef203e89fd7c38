package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/tokens"
)

const CtxClaims = "claims"

const (
	MsgTokenMissing = "token not provided"
	MsgTokenFormat  = "invalid token format"
	MsgAuthFailed   = "authentication failed"
)

type claimsKey struct{}

type Verifier interface {
	Verify(token string) (*tokens.Claims, error)
}

// BearerAuth lets a request through only with a valid "Authorization: Bearer <token>" header.
func BearerAuth(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "bearer_auth")

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				l.Warn("auth_rejected", "status", 401, "reason", MsgTokenMissing)
				return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenMissing)
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				l.Warn("auth_rejected", "status", 401, "reason", MsgTokenFormat)
				return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenFormat)
			}

			claims, err := v.Verify(parts[1])
			if err != nil {
				detail := "invalid token"
				if errors.Is(err, tokens.ErrTokenExpired) {
					detail = "token expired"
				}
				l.Warn("auth_rejected", "status", 401, "reason", detail, "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, MsgAuthFailed).SetInternal(errors.New(detail))
			}

			c.Set(CtxClaims, claims)
			ctx := context.WithValue(c.Request().Context(), claimsKey{}, claims)
			ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", claims.UserID))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// Identity returns the claims stored by BearerAuth, or nil.
func Identity(c echo.Context) *tokens.Claims {
	claims, _ := c.Get(CtxClaims).(*tokens.Claims)
	return claims
}

func ClaimsFromContext(ctx context.Context) (*tokens.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*tokens.Claims)
	return claims, ok
}
