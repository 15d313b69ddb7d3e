package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/gateway"
	"app/internal/handler"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type WebhookGatewayMock struct {
	mock.Mock
	configured bool
}

func (m *WebhookGatewayMock) Configured() bool { return m.configured }

func (m *WebhookGatewayMock) Confirm(ctx context.Context, tid string, amount int64) (gateway.ConfirmResult, error) {
	args := m.Called(ctx, tid, amount)
	r, _ := args.Get(0).(gateway.ConfirmResult)
	return r, args.Error(1)
}

type webhookClock struct{}

func (c *webhookClock) Now() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func newPaymentWebhookEcho(orders *WebhookOrderRepoMock, gw *WebhookGatewayMock) *echo.Echo {
	e := echo.New()
	uc := usecase.NewPaymentUsecase(orders, gw, &webhookClock{})
	handler.NewPaymentWebhookHandler(uc).RegisterRoutes(e)
	return e
}

func TestPaymentWebhook_Success(t *testing.T) {
	orders := new(WebhookOrderRepoMock)
	gw := &WebhookGatewayMock{configured: true}

	gw.On("Confirm", mock.Anything, "t123", int64(20000)).Return(gateway.ConfirmResult{
		ResultCode: "0000",
		TID:        "t123",
		Amount:     20000,
	}, nil)
	orders.On("SetPaymentResult", mock.Anything, "s1", "o1", model.OrderStatusPaymentDone, mock.Anything).Return(nil)

	e := newPaymentWebhookEcho(orders, gw)
	rec := postJSON(e, "/webhooks/payment", `{"tid":"t123","amount":20000,"orderId":"o1","storeId":"s1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	orders.AssertExpectations(t)
}

func TestPaymentWebhook_KeyMissing(t *testing.T) {
	orders := new(WebhookOrderRepoMock)
	gw := &WebhookGatewayMock{configured: false}

	e := newPaymentWebhookEcho(orders, gw)
	rec := postJSON(e, "/webhooks/payment", `{"tid":"t123","amount":20000,"orderId":"o1","storeId":"s1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NICEPAY_KEY_MISSING", body["code"])

	// 주문에는 아무것도 기록되지 않는다
	orders.AssertNotCalled(t, "SetPaymentResult")
}

func TestPaymentWebhook_Rejected(t *testing.T) {
	orders := new(WebhookOrderRepoMock)
	gw := &WebhookGatewayMock{configured: true}

	gw.On("Confirm", mock.Anything, "t123", int64(20000)).Return(gateway.ConfirmResult{
		ResultCode: "3001",
		ResultMsg:  "카드 한도 초과",
	}, nil)
	orders.On("SetPaymentResult", mock.Anything, "s1", "o1", model.OrderStatusPaymentFailed, mock.Anything).Return(nil)

	e := newPaymentWebhookEcho(orders, gw)
	rec := postJSON(e, "/webhooks/payment", `{"tid":"t123","amount":20000,"orderId":"o1","storeId":"s1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "3001", body["code"])
	assert.Equal(t, "카드 한도 초과", body["error"])
	orders.AssertExpectations(t)
}

func TestPaymentWebhook_GatewayUnreachable(t *testing.T) {
	orders := new(WebhookOrderRepoMock)
	gw := &WebhookGatewayMock{configured: true}

	gw.On("Confirm", mock.Anything, "t123", int64(20000)).
		Return(gateway.ConfirmResult{}, context.DeadlineExceeded)

	e := newPaymentWebhookEcho(orders, gw)
	rec := postJSON(e, "/webhooks/payment", `{"tid":"t123","amount":20000,"orderId":"o1","storeId":"s1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeBody(t, rec)["error"])
	orders.AssertNotCalled(t, "SetPaymentResult")
}
