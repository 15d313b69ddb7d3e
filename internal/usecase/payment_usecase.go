package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"app/internal/domain/model"
	"app/internal/gateway"
	repo "app/internal/repository"
)

// ErrGatewayKeyMissing은 서버에 결제 시크릿이 없을 때. 주문에는 아무것도 쓰지 않는다.
var ErrGatewayKeyMissing = errors.New("payment gateway secret not configured")

// GatewayRejectedError는 게이트웨이가 승인을 거절한 경우. 주문은 결제실패로 기록된다.
type GatewayRejectedError struct {
	Code    string
	Message string
}

func (e *GatewayRejectedError) Error() string {
	return "payment rejected: " + e.Code + " " + e.Message
}

// PaymentGateway는 승인 API 추상화 (테스트 대체용).
type PaymentGateway interface {
	Configured() bool
	Confirm(ctx context.Context, tid string, amount int64) (gateway.ConfirmResult, error)
}

type PaymentUsecase struct {
	orders repo.OrderRepository
	gw     PaymentGateway
	clock  Clock
}

func NewPaymentUsecase(orders repo.OrderRepository, gw PaymentGateway, clock Clock) *PaymentUsecase {
	return &PaymentUsecase{orders: orders, gw: gw, clock: clock}
}

type ConfirmPaymentInput struct {
	TID     string
	Amount  int64
	OrderID string
	StoreID string
}

// Confirm은 결제 웹훅의 본체.
//  1. 시크릿 없으면 즉시 실패 (주문에 쓰기 없음)
//  2. 게이트웨이 승인 호출
//  3. 성공 → 결제완료 + 결제 서브레코드 / 거절 → 결제실패 + 오류 정보
//
// 승인 호출 자체가 실패하면 (네트워크 등) 주문은 원래 상태 그대로 둔다.
func (u *PaymentUsecase) Confirm(ctx context.Context, in ConfirmPaymentInput) (gateway.ConfirmResult, error) {
	if !u.gw.Configured() {
		return gateway.ConfirmResult{}, ErrGatewayKeyMissing
	}

	result, err := u.gw.Confirm(ctx, in.TID, in.Amount)
	if err != nil {
		log.Printf("결제 승인 호출 실패 (order=%s tid=%s): %v", in.OrderID, in.TID, err)
		return gateway.ConfirmResult{}, err
	}

	if result.Success() {
		payment := model.Payment{
			Gateway:    "nicepay",
			TID:        result.TID,
			Amount:     result.Amount,
			PaidAt:     parsePaidAt(result.PaidAt, u.clock),
			CardName:   result.CardName,
			CardNumber: result.CardNumber,
		}
		if err := u.orders.SetPaymentResult(ctx, in.StoreID, in.OrderID, model.OrderStatusPaymentDone, payment); err != nil {
			log.Printf("결제 결과 기록 실패 (order=%s): %v", in.OrderID, err)
			return gateway.ConfirmResult{}, err
		}
		return result, nil
	}

	// 게이트웨이 거절 → 결제실패로 기록하고 거절 오류 반환
	payment := model.Payment{
		Gateway:      "nicepay",
		TID:          in.TID,
		Amount:       in.Amount,
		ErrorCode:    result.ResultCode,
		ErrorMessage: result.ResultMsg,
	}
	if err := u.orders.SetPaymentResult(ctx, in.StoreID, in.OrderID, model.OrderStatusPaymentFailed, payment); err != nil {
		log.Printf("결제 실패 기록 실패 (order=%s): %v", in.OrderID, err)
		return gateway.ConfirmResult{}, err
	}
	return result, &GatewayRejectedError{Code: result.ResultCode, Message: result.ResultMsg}
}

// NICEPAY paidAt 포맷이 비어 있거나 깨져 있으면 서버 시간으로 대체한다.
func parsePaidAt(s string, clock Clock) time.Time {
	if s == "" {
		return clock.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return clock.Now()
}
