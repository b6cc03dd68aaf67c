package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Address      *handler.AddressHandler
	Catalog      *handler.CatalogHandler
	AdminCatalog *handler.AdminCatalogHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
	Marketing    *handler.MarketingHandler
	Contact      *handler.ContactHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開
	h.Catalog.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)

	//ログイン必須（一部公開を含む）
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Address.RegisterRoutes(e.Group(
		"/addresses",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	))

	//公開 + admin
	h.Marketing.RegisterRoutes(e, cfg, userRepo)

	//admin
	h.AdminCatalog.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg, userRepo)
}
