package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /categories と /products の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// 公開カタログのルートを登録
func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.listCategories)
	e.GET("/categories/:slug", h.category)
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) category(c echo.Context) error {
	out, err := h.uc.GetCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?page=&limit=&category=<slug>&featured=true
func (h *CatalogHandler) list(c echo.Context) error {
	in, msg := productListQuery(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	out, err := h.uc.ListPublicProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	p, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// 不正なクエリならエラーメッセージを返す
func productListQuery(c echo.Context) (usecase.ListProductsInput, string) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return usecase.ListProductsInput{}, "invalid page"
	}
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return usecase.ListProductsInput{}, "invalid limit"
	}
	featured, ok := queryBool(c, "featured")
	if !ok {
		return usecase.ListProductsInput{}, "invalid featured"
	}

	return usecase.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Category: c.QueryParam("category"),
		Featured: featured,
	}, ""
}
