package model

import "time"

type DeliverySettings struct {
	// 배달업체 어드민에 등록된 상점 식별자. 웹훅의 shopId와 대조한다.
	ShopID string `bson:"shopId,omitempty" json:"shop_id,omitempty"`
}

type StoreSettings struct {
	DeliverySettings DeliverySettings `bson:"deliverySettings,omitempty" json:"delivery_settings,omitempty"`
}

type Store struct {
	ID       string        `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Settings StoreSettings `bson:"settings,omitempty" json:"settings,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
