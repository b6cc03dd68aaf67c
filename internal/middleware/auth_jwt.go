package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/authtoken"
	"storefront/internal/config"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
	ctxClaimsKey       = "access_claims" // *authtoken.AccessClaims
)

type errorResponse struct {
	Error string `json:"error"`
}

func deny(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

func unauthorized(c echo.Context) error {
	return deny(c, http.StatusUnauthorized, "unauthorized")
}

// "Bearer <token>" からtokenを取り出す
func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// AuthJWT はアクセストークンを検証してclaimsをcontextに載せる
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c)
			}

			claims, err := authtoken.Parse(raw, cfg.JWTSecret)
			if err != nil {
				c.Logger().Debugf("access token rejected: %v", err)
				return unauthorized(c)
			}

			c.Set(ctxClaimsKey, claims)
			c.Set(CtxUserIDKey, claims.UserID())
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) (*authtoken.AccessClaims, bool) {
	claims, ok := c.Get(ctxClaimsKey).(*authtoken.AccessClaims)
	return claims, ok && claims != nil
}
