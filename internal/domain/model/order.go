package model

import "time"

type OrderStatus string

const (
	OrderStatusReceived     OrderStatus = "접수"
	OrderStatusAcknowledged OrderStatus = "접수완료"
	OrderStatusPreparing    OrderStatus = "조리중"
	OrderStatusDelivering   OrderStatus = "배달중"
	OrderStatusCompleted    OrderStatus = "완료"

	// 결제 관련 (결제 웹훅만 설정)
	OrderStatusAwaitingPayment OrderStatus = "결제대기"
	OrderStatusPaymentDone     OrderStatus = "결제완료"
	OrderStatusPaymentFailed   OrderStatus = "결제실패"

	// 배달 관련 (배달 웹훅만 설정)
	OrderStatusCarrierAssigned OrderStatus = "배달접수"

	OrderStatusCanceled         OrderStatus = "취소"
	OrderStatusDeliveryCanceled OrderStatus = "주문취소"
)

// statusFlow는 정상 진행 순서. 사이드 상태(결제/배달접수/취소)는 포함하지 않는다.
var statusFlow = []OrderStatus{
	OrderStatusReceived,
	OrderStatusAcknowledged,
	OrderStatusPreparing,
	OrderStatusDelivering,
	OrderStatusCompleted,
}

// NextStatus는 진행 순서상 다음 상태를 반환한다.
// 마지막 상태이거나 진행 순서에 없는 상태면 ok=false.
func NextStatus(current OrderStatus) (OrderStatus, bool) {
	for i, s := range statusFlow {
		if s == current && i < len(statusFlow)-1 {
			return statusFlow[i+1], true
		}
	}
	return "", false
}

// IsTerminal은 더 이상 상태 전이가 허용되지 않는 상태인지 여부.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled || s == OrderStatusDeliveryCanceled
}

type OrderOption struct {
	Name     string `bson:"name" json:"name"`
	Price    int64  `bson:"price" json:"price"`
	Quantity int64  `bson:"quantity" json:"quantity"`
}

type OrderItem struct {
	Name     string        `bson:"name" json:"name"`
	Price    int64         `bson:"price" json:"price"`
	Quantity int64         `bson:"quantity" json:"quantity"`
	Options  []OrderOption `bson:"options,omitempty" json:"options,omitempty"`
}

// Payment는 결제 게이트웨이 승인 결과. 실패 시 ErrorCode/ErrorMessage만 채워진다.
type Payment struct {
	Gateway      string    `bson:"gateway" json:"gateway"`
	TID          string    `bson:"tid" json:"tid"`
	Amount       int64     `bson:"amount" json:"amount"`
	PaidAt       time.Time `bson:"paidAt,omitempty" json:"paid_at,omitempty"`
	CardName     string    `bson:"cardName,omitempty" json:"card_name,omitempty"`
	CardNumber   string    `bson:"cardNumber,omitempty" json:"card_number,omitempty"`
	ErrorCode    string    `bson:"errorCode,omitempty" json:"error_code,omitempty"`
	ErrorMessage string    `bson:"errorMessage,omitempty" json:"error_message,omitempty"`
}

type Order struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	StoreID     string      `bson:"storeId" json:"store_id"`
	UserID      string      `bson:"userId" json:"user_id"`
	Items       []OrderItem `bson:"items" json:"items"`
	TotalPrice  int64       `bson:"totalPrice" json:"total_price"`
	Address     string      `bson:"address" json:"address"`
	Phone       string      `bson:"phone" json:"phone"`
	Memo        string      `bson:"memo,omitempty" json:"memo,omitempty"`
	PaymentType string      `bson:"paymentType" json:"payment_type"`
	Status      OrderStatus `bson:"status" json:"status"`

	// 배달업체가 보내온 원본 상태 문자열 (내부 상태와 별도로 보존)
	DeliveryStatus string `bson:"deliveryStatus,omitempty" json:"delivery_status,omitempty"`

	Payment *Payment `bson:"payment,omitempty" json:"payment,omitempty"`

	// 리뷰 미러 필드 (reviews 문서와 함께 갱신)
	Reviewed     bool       `bson:"reviewed" json:"reviewed"`
	ReviewText   string     `bson:"reviewText,omitempty" json:"review_text,omitempty"`
	ReviewRating int        `bson:"reviewRating,omitempty" json:"review_rating,omitempty"`
	ReviewedAt   *time.Time `bson:"reviewedAt,omitempty" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
