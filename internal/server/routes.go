package server

import (
	"net/http"

	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.Coupon.RegisterRoutes(e, cfg)
	h.Menu.RegisterRoutes(e, cfg)
	h.Event.RegisterRoutes(e, cfg)
	h.Review.RegisterRoutes(e, cfg)

	h.PaymentWebhook.RegisterRoutes(e)
	h.DeliveryWebhook.RegisterRoutes(e)
}
