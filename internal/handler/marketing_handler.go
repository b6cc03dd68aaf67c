package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カルーセルとメール購読
type MarketingHandler struct {
	uc *usecase.MarketingUsecase
}

func NewMarketingHandler(uc *usecase.MarketingUsecase) *MarketingHandler {
	return &MarketingHandler{uc: uc}
}

func (h *MarketingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/carousels", h.listPublished)
	e.POST("/subscribe", h.subscribe)

	admin := e.Group(
		"/admin",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.AdminRoleGuard(),
	)
	admin.GET("/carousels", h.adminList)
	admin.POST("/carousels", h.create)
	admin.PUT("/carousels/:id", h.update)
	admin.DELETE("/carousels/:id", h.delete)
	admin.GET("/subscribers", h.subscribers)
}

// publishedだけ返す
func (h *MarketingHandler) listPublished(c echo.Context) error {
	out, err := h.uc.ListPublishedCarousels(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketingHandler) subscribe(c echo.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Subscribe(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ?status=draft|published|deleted、省略で全件
func (h *MarketingHandler) adminList(c echo.Context) error {
	out, err := h.uc.AdminListCarousels(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketingHandler) create(c echo.Context) error {
	var req usecase.CarouselInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.AdminCreateCarousel(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MarketingHandler) update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req usecase.CarouselInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.AdminUpdateCarousel(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketingHandler) delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.AdminDeleteCarousel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *MarketingHandler) subscribers(c echo.Context) error {
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return badRequest(c, "invalid offset")
	}

	out, err := h.uc.AdminListSubscribers(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
