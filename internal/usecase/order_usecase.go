package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/feed"
	repo "app/internal/repository"
)

// ReceiptPrinter는 주방 영수증 출력. 실패해도 재시도하지 않는다.
type ReceiptPrinter interface {
	Print(ctx context.Context, order model.Order) error
}

// 접수 전환 후 영수증 출력까지의 지연 (화면 갱신이 먼저 되도록)
const receiptPrintDelay = 500 * time.Millisecond

type OrderUsecase struct {
	orders     repo.OrderRepository
	printer    ReceiptPrinter
	printDelay time.Duration
}

func NewOrderUsecase(orders repo.OrderRepository, printer ReceiptPrinter) *OrderUsecase {
	return &OrderUsecase{orders: orders, printer: printer, printDelay: receiptPrintDelay}
}

type CreateOrderInput struct {
	Items       []model.OrderItem
	TotalPrice  int64
	Address     string
	Phone       string
	Memo        string
	PaymentType string

	// 결제 게이트웨이로 넘어가기 전에 만드는 주문은 결제대기로 시작한다
	AwaitPayment bool
}

// Create는 새 주문을 만든다. 호출자가 무슨 상태를 보내든 초기 상태는 고정이다.
func (u *OrderUsecase) Create(ctx context.Context, storeID, userID string, in CreateOrderInput) (string, error) {
	if len(in.Items) == 0 {
		return "", NewHTTPError(http.StatusBadRequest, "items required")
	}
	if in.Address == "" {
		return "", NewHTTPError(http.StatusBadRequest, "address required")
	}
	if in.Phone == "" {
		return "", NewHTTPError(http.StatusBadRequest, "phone required")
	}

	status := model.OrderStatusReceived
	if in.AwaitPayment {
		status = model.OrderStatusAwaitingPayment
	}

	id, err := u.orders.Create(ctx, model.Order{
		StoreID:     storeID,
		UserID:      userID,
		Items:       in.Items,
		TotalPrice:  in.TotalPrice,
		Address:     in.Address,
		Phone:       in.Phone,
		Memo:        in.Memo,
		PaymentType: in.PaymentType,
		Status:      status,
	})
	if err != nil {
		log.Printf("주문 생성 실패: %v", err)
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

// UpdateStatus는 전이 합법성을 검사한 뒤 상태를 바꾼다.
// 허용: 진행 순서상 다음 상태 / 비종결 상태에서의 취소 / 결제 완료·대기 주문의 접수 전환.
// 웹훅이 쓰는 사이드 상태는 여기를 거치지 않는다.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, storeID, orderID string, newStatus model.OrderStatus) error {
	o, err := u.orders.FindByID(ctx, storeID, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.legal(o.Status, newStatus) {
		return &InvalidTransitionError{From: o.Status, To: newStatus}
	}

	if err := u.orders.UpdateStatus(ctx, storeID, orderID, newStatus); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 접수 전환 시 영수증 자동 출력 (fire-and-forget)
	if newStatus == model.OrderStatusReceived && u.printer != nil {
		u.schedulePrint(o)
	}

	return nil
}

// Advance는 어드민 콘솔의 "다음 단계" 버튼. 진행 순서상 다음 상태로 넘긴다.
func (u *OrderUsecase) Advance(ctx context.Context, storeID, orderID string) (model.OrderStatus, error) {
	o, err := u.orders.FindByID(ctx, storeID, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	next, ok := model.NextStatus(o.Status)
	if !ok {
		return "", &InvalidTransitionError{From: o.Status, To: ""}
	}

	if err := u.orders.UpdateStatus(ctx, storeID, orderID, next); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return next, nil
}

// Cancel은 비종결 상태 어디서든 가능하다.
func (u *OrderUsecase) Cancel(ctx context.Context, storeID, orderID string) error {
	o, err := u.orders.FindByID(ctx, storeID, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.Status.IsTerminal() {
		return &InvalidTransitionError{From: o.Status, To: model.OrderStatusCanceled}
	}

	if err := u.orders.UpdateStatus(ctx, storeID, orderID, model.OrderStatusCanceled); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Delete는 하드 삭제. 리뷰 미러 등 연관 데이터 정리는 하지 않는다.
func (u *OrderUsecase) Delete(ctx context.Context, storeID, orderID string) error {
	err := u.orders.Delete(ctx, storeID, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *OrderUsecase) Get(ctx context.Context, storeID, orderID string) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, storeID, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

func (u *OrderUsecase) ListByUser(ctx context.Context, storeID, userID string) ([]model.Order, error) {
	out, err := u.orders.ListByUser(ctx, storeID, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

func (u *OrderUsecase) ListByStatus(ctx context.Context, storeID string, status model.OrderStatus) ([]model.Order, error) {
	out, err := u.orders.ListByStatus(ctx, storeID, status)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

func (u *OrderUsecase) ListAll(ctx context.Context, storeID string) ([]model.Order, error) {
	out, err := u.orders.ListAll(ctx, storeID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

func (u *OrderUsecase) legal(from, to model.OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == model.OrderStatusCanceled {
		return true
	}
	if next, ok := model.NextStatus(from); ok && next == to {
		return true
	}
	// 결제 쪽에 있던 주문을 주방 대기열로 넘기는 경로
	if to == model.OrderStatusReceived &&
		(from == model.OrderStatusPaymentDone || from == model.OrderStatusAwaitingPayment) {
		return true
	}
	return false
}

func (u *OrderUsecase) schedulePrint(o model.Order) {
	time.AfterFunc(u.printDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.printer.Print(ctx, o); err != nil {
			log.Printf("영수증 출력 실패 (order=%s): %v", o.ID, err)
		}
	})
}

// 라이브 피드용 쿼리 빌더들. 동일 쿼리 값이면 feed가 재구독하지 않는다.

func AllOrdersQuery(storeID string) feed.Query {
	return feed.Query{
		Collection: "orders",
		Filters:    []feed.Filter{{Field: "storeId", Op: feed.OpEqual, Value: storeID}},
		OrderBy:    "createdAt",
		Descending: true,
	}
}

func UserOrdersQuery(storeID, userID string) feed.Query {
	return feed.Query{
		Collection: "orders",
		Filters: []feed.Filter{
			{Field: "storeId", Op: feed.OpEqual, Value: storeID},
			{Field: "userId", Op: feed.OpEqual, Value: userID},
		},
		OrderBy:    "createdAt",
		Descending: true,
	}
}

func OrdersByStatusQuery(storeID string, status model.OrderStatus) feed.Query {
	return feed.Query{
		Collection: "orders",
		Filters: []feed.Filter{
			{Field: "storeId", Op: feed.OpEqual, Value: storeID},
			{Field: "status", Op: feed.OpEqual, Value: string(status)},
		},
		OrderBy:    "createdAt",
		Descending: true,
	}
}
