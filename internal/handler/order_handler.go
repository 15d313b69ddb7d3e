package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	if ie, ok := usecase.AsInvalidTransition(err); ok {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: ie.Error()})
	}

	// 500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// /orders 고객용 API
type OrderHandler struct {
	uc      *usecase.OrderUsecase
	storeID string
}

func NewOrderHandler(uc *usecase.OrderUsecase, storeID string) *OrderHandler {
	return &OrderHandler{uc: uc, storeID: storeID}
}

type OrderCreateRequest struct {
	Items        []model.OrderItem `json:"items"`
	TotalPrice   int64             `json:"total_price"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Memo         string            `json:"memo"`
	PaymentType  string            `json:"payment_type"`
	AwaitPayment bool              `json:"await_payment"`
}

type OrderCreateResponse struct {
	ID string `json:"id"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id/cancel", h.cancel)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), h.storeID, userID, usecase.CreateOrderInput{
		Items:        req.Items,
		TotalPrice:   req.TotalPrice,
		Address:      req.Address,
		Phone:        req.Phone,
		Memo:         req.Memo,
		PaymentType:  req.PaymentType,
		AwaitPayment: req.AwaitPayment,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderCreateResponse{ID: id})
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListByUser(c.Request().Context(), h.storeID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	o, err := h.uc.Get(c.Request().Context(), h.storeID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	// 남의 주문은 없는 것으로 취급
	if o.UserID != userID {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	o, err := h.uc.Get(c.Request().Context(), h.storeID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if o.UserID != userID {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.Cancel(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "canceled"})
}
