package middleware

import (
	"net/http"

	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// TokenVersionGuard はtvがDBのtoken_versionと一致するトークンだけ通す。
// パスワード変更や強制ログアウトでtoken_versionが上がると古いトークンは401になる。
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return unauthorized(c)
			}

			user, err := userRepo.FindByID(c.Request().Context(), claims.UserID())
			switch {
			case err != nil || user == nil:
				return unauthorized(c)
			case !user.IsActive:
				return deny(c, http.StatusForbidden, "user inactive")
			case user.TokenVersion != claims.TokenVersion:
				return unauthorized(c)
			}
			return next(c)
		}
	}
}
