package gateway_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/gateway"

	"github.com/stretchr/testify/assert"
)

func TestNicepayClient_Configured(t *testing.T) {
	assert.True(t, gateway.NewNicepayClient("http://x", "id", "secret").Configured())
	assert.False(t, gateway.NewNicepayClient("http://x", "id", "").Configured())
}

func TestNicepayClient_Confirm(t *testing.T) {
	var gotPath, gotAuth, gotBody string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCode":"0000","resultMsg":"정상 처리","tid":"t123","amount":20000,"cardName":"국민카드"}`))
	}))
	defer ts.Close()

	c := gateway.NewNicepayClient(ts.URL, "client-1", "secret-1")
	result, err := c.Confirm(context.Background(), "t123", 20000)
	assert.NoError(t, err)

	assert.Equal(t, "/v1/payments/t123", gotPath)
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-1:secret-1"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.JSONEq(t, `{"amount":20000}`, gotBody)

	assert.True(t, result.Success())
	assert.Equal(t, "t123", result.TID)
	assert.Equal(t, int64(20000), result.Amount)
}

func TestNicepayClient_Confirm_Rejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCode":"3001","resultMsg":"카드 한도 초과"}`))
	}))
	defer ts.Close()

	c := gateway.NewNicepayClient(ts.URL, "client-1", "secret-1")
	result, err := c.Confirm(context.Background(), "t123", 20000)
	assert.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, "3001", result.ResultCode)
}
