package model

import "time"

type Menu struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	StoreID     string   `bson:"storeId" json:"store_id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64    `bson:"price" json:"price"`
	Category    []string `bson:"category" json:"category"`
	ImageURL    string   `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	Soldout     bool     `bson:"soldout" json:"soldout"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
