package model

import "time"

type Review struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	StoreID  string `bson:"storeId" json:"store_id"`
	OrderID  string `bson:"orderId" json:"order_id"`
	UserID   string `bson:"userId" json:"user_id"`
	UserName string `bson:"userName,omitempty" json:"user_name,omitempty"`
	Rating   int    `bson:"rating" json:"rating"`
	Comment  string `bson:"comment" json:"comment"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
