package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /auth 配下
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// 登録・ログイン・リセットは公開、meとパスワード変更はJWT必須
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/password/reset", h.requestReset)
	e.POST("/auth/password/reset/complete", h.completeReset)

	authed := e.Group("/auth",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	)
	authed.GET("/me", h.me)
	authed.POST("/password/change", h.changePassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 変更後は今のトークンも失効するので再ログインが必要
func (h *AuthHandler) changePassword(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "password changed"})
}

// 登録されていないメールでも同じレスポンスを返す
func (h *AuthHandler) requestReset(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.RequestPasswordReset(c.Request().Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, SuccessResponse{Message: "password reset mail sent"})
}

func (h *AuthHandler) completeReset(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.CompletePasswordReset(c.Request().Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "password reset complete"})
}
