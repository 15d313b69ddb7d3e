package model

import "time"

type Event struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	StoreID  string `bson:"storeId" json:"store_id"`
	Title    string `bson:"title" json:"title"`
	ImageURL string `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	Link     string `bson:"link,omitempty" json:"link,omitempty"`
	Active   bool   `bson:"active" json:"active"`

	StartDate time.Time `bson:"startDate" json:"start_date"`
	EndDate   time.Time `bson:"endDate" json:"end_date"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// InPeriod는 이벤트 노출 기간 안인지 여부.
func (e Event) InPeriod(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}
