package model

import "time"

type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypePercentage DiscountType = "percentage"
)

type Coupon struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	StoreID      string       `bson:"storeId" json:"store_id"`
	Code         string       `bson:"code" json:"code"`
	Name         string       `bson:"name" json:"name"`
	DiscountType DiscountType `bson:"discountType" json:"discount_type"`
	DiscountValue int64       `bson:"discountValue" json:"discount_value"`

	// percentage 타입에서만 의미 있는 최대 할인 한도
	MaxDiscountAmount *int64 `bson:"maxDiscountAmount,omitempty" json:"max_discount_amount,omitempty"`
	MinOrderAmount    int64  `bson:"minOrderAmount" json:"min_order_amount"`

	ValidFrom  time.Time `bson:"validFrom" json:"valid_from"`
	ValidUntil time.Time `bson:"validUntil" json:"valid_until"`
	IsActive   bool      `bson:"isActive" json:"is_active"`

	// 특정 고객 지정 쿠폰 (지정 시 1회용)
	AssignedUserID    string `bson:"assignedUserId,omitempty" json:"assigned_user_id,omitempty"`
	AssignedUserName  string `bson:"assignedUserName,omitempty" json:"assigned_user_name,omitempty"`
	AssignedUserPhone string `bson:"assignedUserPhone,omitempty" json:"assigned_user_phone,omitempty"`

	IsUsed    bool       `bson:"isUsed" json:"is_used"`
	UsedAt    *time.Time `bson:"usedAt,omitempty" json:"used_at,omitempty"`
	UsedCount int64      `bson:"usedCount" json:"used_count"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// Usable은 지금 시점에 사용 가능한 쿠폰인지 판정한다.
// validUntil 당일 경계는 포함이다.
func (c Coupon) Usable(now time.Time) bool {
	return c.IsActive && !c.IsUsed && !now.After(c.ValidUntil)
}
