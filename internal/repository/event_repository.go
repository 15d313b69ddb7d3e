package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type EventUpdate struct {
	Title     *string
	ImageURL  *string
	Link      *string
	Active    *bool
	StartDate *time.Time
	EndDate   *time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event model.Event) (string, error)
	FindByID(ctx context.Context, storeID, eventID string) (model.Event, error)
	Update(ctx context.Context, storeID, eventID string, upd EventUpdate) error
	Delete(ctx context.Context, storeID, eventID string) error

	ListAll(ctx context.Context, storeID string) ([]model.Event, error)
	// ListActive는 active 플래그가 켜진 이벤트만 (노출 기간 판정은 usecase)
	ListActive(ctx context.Context, storeID string) ([]model.Event, error)
}
