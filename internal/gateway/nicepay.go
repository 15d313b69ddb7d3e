package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const resultCodeSuccess = "0000"

// ConfirmResult는 NICEPAY 승인 API 응답 중 이쪽에서 쓰는 필드들.
type ConfirmResult struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
	TID        string `json:"tid"`
	Amount     int64  `json:"amount"`
	PaidAt     string `json:"paidAt"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"` // 마스킹된 번호
}

func (r ConfirmResult) Success() bool {
	return r.ResultCode == resultCodeSuccess
}

// NicepayClient는 결제 승인 호출 담당. clientID:secretKey basic auth.
type NicepayClient struct {
	baseURL   string
	clientID  string
	secretKey string
	http      *http.Client
}

func NewNicepayClient(baseURL, clientID, secretKey string) *NicepayClient {
	return &NicepayClient{
		baseURL:   baseURL,
		clientID:  clientID,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured는 서버 시크릿이 세팅되어 있는지. 없으면 결제는 무조건 실패해야 한다 (fail closed).
func (c *NicepayClient) Configured() bool {
	return c.secretKey != ""
}

// Confirm은 tid에 대한 결제 승인을 요청한다. 재시도 없음.
func (c *NicepayClient) Confirm(ctx context.Context, tid string, amount int64) (ConfirmResult, error) {
	body, err := json.Marshal(map[string]int64{"amount": amount})
	if err != nil {
		return ConfirmResult{}, err
	}

	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, tid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ConfirmResult{}, err
	}

	creds := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ConfirmResult{}, err
	}
	defer resp.Body.Close()

	var result ConfirmResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ConfirmResult{}, fmt.Errorf("decode confirm response: %w", err)
	}
	return result, nil
}
