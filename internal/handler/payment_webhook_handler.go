package handler

import (
	"errors"
	"log"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 결제 게이트웨이 콜백. 응답 포맷은 게이트웨이 연동 규격에 맞춘다.
type PaymentWebhookHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentWebhookHandler(uc *usecase.PaymentUsecase) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{uc: uc}
}

type PaymentWebhookRequest struct {
	TID     string `json:"tid"`
	Amount  int64  `json:"amount"`
	OrderID string `json:"orderId"`
	StoreID string `json:"storeId"`
}

func (h *PaymentWebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/payment", h.handle)
	e.OPTIONS("/webhooks/payment", h.preflight)
}

// 게이트웨이 결제창은 어느 origin에서든 호출할 수 있다
func setWebhookCORS(c echo.Context) {
	h := c.Response().Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func (h *PaymentWebhookHandler) preflight(c echo.Context) error {
	setWebhookCORS(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *PaymentWebhookHandler) handle(c echo.Context) error {
	setWebhookCORS(c)

	var req PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	result, err := h.uc.Confirm(c.Request().Context(), usecase.ConfirmPaymentInput{
		TID:     req.TID,
		Amount:  req.Amount,
		OrderID: req.OrderID,
		StoreID: req.StoreID,
	})

	if err != nil {
		if errors.Is(err, usecase.ErrGatewayKeyMissing) {
			// 시크릿 미설정: 설정 오류임을 구분 가능한 코드로 알린다
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"code":    "NICEPAY_KEY_MISSING",
				"message": "payment secret key is not configured",
			})
		}

		var rejected *usecase.GatewayRejectedError
		if errors.As(err, &rejected) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   rejected.Message,
				"code":    rejected.Code,
			})
		}

		log.Printf("[Webhook] payment confirm error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Internal Server Error",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    result,
	})
}
