package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type OrderRepository interface {
	// Create는 생성/수정 시각을 서버 시간으로 채우고 새 ID를 반환한다.
	Create(ctx context.Context, order model.Order) (string, error)
	FindByID(ctx context.Context, storeID, orderID string) (model.Order, error)

	// UpdateStatus는 무조건 덮어쓴다. 전이 합법성 검사는 usecase 쪽 책임.
	UpdateStatus(ctx context.Context, storeID, orderID string, status model.OrderStatus) error

	// SetDeliveryStatus는 내부 상태와 배달업체 원본 상태를 한 번에 갱신한다.
	SetDeliveryStatus(ctx context.Context, storeID, orderID string, status model.OrderStatus, raw string) error

	// SetPaymentResult는 결제 웹훅 결과(성공/실패)를 주문에 기록한다.
	SetPaymentResult(ctx context.Context, storeID, orderID string, status model.OrderStatus, payment model.Payment) error

	// 리뷰 미러 필드 (reviews 문서 생성/삭제와 함께 호출)
	SetReviewMirror(ctx context.Context, storeID, orderID, text string, rating int, reviewedAt time.Time) error
	ClearReviewMirror(ctx context.Context, storeID, orderID string) error

	// Delete는 하드 삭제. 복구 불가.
	Delete(ctx context.Context, storeID, orderID string) error

	ListByUser(ctx context.Context, storeID, userID string) ([]model.Order, error)
	ListByStatus(ctx context.Context, storeID string, status model.OrderStatus) ([]model.Order, error)
	ListAll(ctx context.Context, storeID string) ([]model.Order, error)
}
