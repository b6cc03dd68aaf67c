package middleware

import (
	"net/http"

	"storefront/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AuthJWTの後に置く。ADMIN以外は403
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return unauthorized(c)
			}
			if model.Role(claims.Role) != model.RoleAdmin {
				return deny(c, http.StatusForbidden, "admin only")
			}
			return next(c)
		}
	}
}
