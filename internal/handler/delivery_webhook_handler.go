package handler

import (
	"log"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 배달업체 상태 콜백.
type DeliveryWebhookHandler struct {
	uc      *usecase.DeliveryUsecase
	storeID string
}

func NewDeliveryWebhookHandler(uc *usecase.DeliveryUsecase, storeID string) *DeliveryWebhookHandler {
	return &DeliveryWebhookHandler{uc: uc, storeID: storeID}
}

type DeliveryWebhookRequest struct {
	Status  string `json:"status"`
	OrderID string `json:"orderId"`
	ShopID  string `json:"shopId"`
}

func (h *DeliveryWebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/delivery", h.handle)
	e.OPTIONS("/webhooks/delivery", h.preflight)
}

func (h *DeliveryWebhookHandler) preflight(c echo.Context) error {
	setWebhookCORS(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *DeliveryWebhookHandler) handle(c echo.Context) error {
	setWebhookCORS(c)

	var req DeliveryWebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "invalid body",
		})
	}

	result, err := h.uc.Update(c.Request().Context(), usecase.DeliveryUpdateInput{
		Status:  req.Status,
		OrderID: req.OrderID,
		ShopID:  req.ShopID,
		StoreID: h.storeID,
	})

	if err != nil {
		if httpErr, ok := usecase.AsHTTPError(err); ok {
			return c.JSON(httpErr.Status, echo.Map{
				"success": false,
				"error":   httpErr.Message,
			})
		}
		log.Printf("[Webhook] delivery update error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Internal Server Error",
		})
	}

	if result.NoChange {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Status received but no state change required",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}
