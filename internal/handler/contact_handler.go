package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/contact", h.send)
}

// ショップの受信箱へメールで転送する
func (h *ContactHandler) send(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.Send(c.Request().Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, SuccessResponse{Message: "message sent"})
}
