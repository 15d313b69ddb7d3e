package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// CouponUpdate는 부분 수정용 입력. nil 필드는 건드리지 않는다.
type CouponUpdate struct {
	Name              *string
	DiscountType      *model.DiscountType
	DiscountValue     *int64
	MaxDiscountAmount *int64
	MinOrderAmount    *int64
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	AssignedUserID    *string
	AssignedUserName  *string
	AssignedUserPhone *string
}

type CouponRepository interface {
	Create(ctx context.Context, coupon model.Coupon) (string, error)
	FindByID(ctx context.Context, storeID, couponID string) (model.Coupon, error)
	Update(ctx context.Context, storeID, couponID string, upd CouponUpdate) error
	SetActive(ctx context.Context, storeID, couponID string, active bool) error

	// MarkUsed는 isUsed/usedAt을 설정하고 usedCount를 1 올린다.
	MarkUsed(ctx context.Context, storeID, couponID string, usedAt time.Time) error

	Delete(ctx context.Context, storeID, couponID string) error

	ListAll(ctx context.Context, storeID string) ([]model.Coupon, error)
	ListActive(ctx context.Context, storeID string) ([]model.Coupon, error)
}
