package server

import (
	"context"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers는 라우팅에 필요한 핸들러 일식.
type Handlers struct {
	Order           *handler.OrderHandler
	AdminOrder      *handler.AdminOrderHandler
	Coupon          *handler.CouponHandler
	Menu            *handler.MenuHandler
	Event           *handler.EventHandler
	Review          *handler.ReviewHandler
	PaymentWebhook  *handler.PaymentWebhookHandler
	DeliveryWebhook *handler.DeliveryWebhookHandler
}

type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

func New(cfg config.Config, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// 스토어프론트/관리자 콘솔 origin만 허용. 웹훅은 핸들러 쪽에서 따로 연다.
	origins := []string{"http://localhost:3000"}
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	}))

	RegisterRoutes(e, cfg, h)

	return &Server{echo: e, cfg: cfg}
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
